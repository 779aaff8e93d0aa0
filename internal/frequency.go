package internal

import (
	"fmt"
	"strings"
)

// Frequency is how often a subscription charges
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Frequencies returns all supported frequencies, shortest period first
func Frequencies() []Frequency {
	return []Frequency{Weekly, Monthly, Quarterly, Yearly}
}

// ParseFrequency parses a frequency name (case-insensitive)
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFrequency, s)
	}
	return f, nil
}

func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

// Step returns d advanced by n recurrence periods.
func (f Frequency) Step(d Date, n int) (Date, error) {
	switch f {
	case Weekly:
		return AddWeeks(d, n), nil
	case Monthly:
		return AddMonths(d, n), nil
	case Quarterly:
		return AddMonths(d, 3*n), nil
	case Yearly:
		return AddYears(d, n), nil
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, string(f))
	}
}

// PerYear returns the nominal number of charges per year (52 for weekly).
// Only for display; projections count real occurrences instead.
func (f Frequency) PerYear() int {
	switch f {
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case Yearly:
		return 1
	default:
		return 0
	}
}
