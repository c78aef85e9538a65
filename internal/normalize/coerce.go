package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tourismfx/internal/frame"
)

var (
	yearMonthPattern = regexp.MustCompile(`(\d{4})\D*(\d{1,2})`)
	nonDigit         = regexp.MustCompile(`\D`)
)

// CoerceCount parses a head-count cell. Thousands separators are ignored, a
// bare dash means zero, and anything unparseable counts as zero.
func CoerceCount(cell string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CoerceRate parses an exchange-rate cell. Unparseable cells are missing.
func CoerceRate(cell string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return frame.Missing
	}
	return v
}

// ParseYearMonth extracts the first four-digit year and the one- or
// two-digit month that follows it, e.g. "2020년 1월" or "2020.01".
func ParseYearMonth(label string) (time.Time, bool) {
	m := yearMonthPattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return frame.MonthStart(year, time.Month(month)), true
}

func digitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

func zeroPad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

var rateDateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04",
	"2006-1-2 15:04:05",
}

// ParseRateDate reads a date cell of an exchange-rate file. "." and "/"
// separators are accepted and a year-month without a day means the first
// of the month.
func ParseRateDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	s = strings.NewReplacer(".", "-", "/", "-").Replace(s)
	s = strings.TrimSuffix(s, "-")
	if len(s) <= 7 {
		s += "-01"
	}
	for _, layout := range rateDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
