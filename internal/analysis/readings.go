package analysis

import "math"

// Reading classifies a correlation coefficient.
type Reading string

const (
	ReadingNotComputable         Reading = "not_computable"
	ReadingNone                  Reading = "none"
	ReadingStrongNegative        Reading = "strong_negative"
	ReadingWeakNegative          Reading = "weak_negative"
	ReadingStrongPositiveUnusual Reading = "strong_positive_unusual"
	ReadingStrongPositive        Reading = "strong_positive"
	ReadingWeakPositive          Reading = "weak_positive"
	ReadingNegativeUnusual       Reading = "negative_unusual"
)

// OutboundReading classifies the correlation between a currency's rate and
// departures to the matching country. A weaker won is expected to reduce
// departures, so negative coefficients are the expected direction.
func OutboundReading(r float64) Reading {
	switch {
	case math.IsNaN(r):
		return ReadingNotComputable
	case r <= -0.5:
		return ReadingStrongNegative
	case r <= -0.2:
		return ReadingWeakNegative
	case r >= 0.5:
		return ReadingStrongPositiveUnusual
	default:
		return ReadingNone
	}
}

// InboundReading classifies the correlation between a currency's rate and
// arrivals from the matching country, where positive is expected.
func InboundReading(r float64) Reading {
	switch {
	case math.IsNaN(r):
		return ReadingNotComputable
	case r >= 0.5:
		return ReadingStrongPositive
	case r >= 0.2:
		return ReadingWeakPositive
	case r <= -0.3:
		return ReadingNegativeUnusual
	default:
		return ReadingNone
	}
}

// Description is a one-sentence reading for display.
func (r Reading) Description() string {
	switch r {
	case ReadingStrongNegative:
		return "departures fall clearly when the rate rises"
	case ReadingWeakNegative:
		return "departures tend to fall somewhat when the rate rises"
	case ReadingStrongPositiveUnusual:
		return "departures rise with the rate, demand is driven by other factors"
	case ReadingStrongPositive:
		return "arrivals rise clearly when the rate rises"
	case ReadingWeakPositive:
		return "arrivals tend to rise slightly when the rate rises"
	case ReadingNegativeUnusual:
		return "arrivals fall despite a rising rate"
	case ReadingNone:
		return "no clear relationship with the rate"
	default:
		return "not enough overlapping data to compute a coefficient"
	}
}
