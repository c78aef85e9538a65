// Package analysis computes Pearson correlations between exchange rates and
// tourism counts and classifies the coefficients into readings.
package analysis
