package internal

import (
	"fmt"

	"github.com/samber/mo"
)

// maxCorrectiveSteps bounds the stepping after the initial jump. The jump never
// overshoots, so one step is always enough; the cap only guards the invariant.
const maxCorrectiveSteps = 4

// NextOccurrence returns the first occurrence on or after ref of a recurrence
// anchored at start. If ref is on or before start, start is returned.
func NextOccurrence(start Date, freq Frequency, ref Date) (Date, error) {
	d, _, err := resolve(start, freq, ref)
	return d, err
}

// resolve is NextOccurrence that also reports the occurrence's period index,
// so that later occurrences can be computed from the anchor.
func resolve(start Date, freq Frequency, ref Date) (Date, int, error) {
	if !freq.Valid() {
		return Date{}, 0, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, string(freq))
	}
	if !ref.After(start) {
		return start, 0, nil
	}

	// Jump close to ref instead of walking every period since the anchor
	var periods int
	switch freq {
	case Weekly:
		periods = DaysBetween(start, ref) / 7
	case Monthly:
		periods = MonthsBetween(start, ref)
	case Quarterly:
		periods = MonthsBetween(start, ref) / 3
	case Yearly:
		periods = ref.Year - start.Year
	default:
		return Date{}, 0, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, string(freq))
	}

	for i := 0; i <= maxCorrectiveSteps; i++ {
		candidate, err := freq.Step(start, periods)
		if err != nil {
			return Date{}, 0, err
		}
		if !candidate.Before(ref) {
			return candidate, periods, nil
		}
		periods++
	}
	return Date{}, 0, fmt.Errorf("no %s occurrence of %s found on or after %s", freq, start, ref)
}

// Resolver resolves next occurrences, falling back to the clock's today when
// no reference date is given.
type Resolver struct {
	Clock Clock
}

func NewResolver(clock Clock) Resolver {
	return Resolver{Clock: clock}
}

// Next returns the first occurrence on or after ref, or on or after today if ref is absent.
func (r Resolver) Next(start Date, freq Frequency, ref mo.Option[Date]) (Date, error) {
	return NextOccurrence(start, freq, ref.OrElse(r.today()))
}

func (r Resolver) today() Date {
	if r.Clock == nil {
		return SystemClock{}.Today()
	}
	return r.Clock.Today()
}
