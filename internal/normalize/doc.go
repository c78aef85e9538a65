// Package normalize turns irregular source grids into month-indexed tables.
//
// Each domain has its own Normalizer. Normalize handles one file and never
// looks at other files; Merge combines the per-file tables of a run into
// the domain's canonical table. Normalizers locate their data by scanning
// for landmark tokens; no fixed row or column offsets are assumed.
package normalize
