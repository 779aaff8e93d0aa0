package internal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// estimateWindowDays is the span used to annualize spending
const estimateWindowDays = 365

var twelve = decimal.NewFromInt(12)

// SumOccurrences adds up the amounts of the given occurrences. Amounts are
// summed as-is; zero or negative values are not rejected here.
func SumOccurrences(occurrences []Occurrence) decimal.Decimal {
	total := decimal.Zero
	for _, o := range occurrences {
		total = total.Add(o.Amount)
	}
	return total
}

// TotalDue is the sum of all charges falling within window
func TotalDue(subs []Subscription, window DateRange) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subs {
		total = total.Add(SumOccurrences(GenerateOccurrences(sub, window.Start, window.End)))
	}
	return total
}

// EstimateWindow returns the 365-day window starting today used by EstimateMonthlyAverage
func EstimateWindow(clock Clock) DateRange {
	today := NewResolver(clock).today()
	return DateRange{Start: today, End: AddDays(today, estimateWindowDays-1)}
}

// EstimateMonthlyAverage annualizes all charges over the next 365 days and
// divides by 12, rounded to cents. Quarterly and yearly charges are spread out
// rather than showing up as spikes.
func EstimateMonthlyAverage(subs []Subscription, clock Clock) decimal.Decimal {
	annual := TotalDue(subs, EstimateWindow(clock))
	return annual.Div(twelve).Round(2)
}

// DayGroup is all charges falling on one date
type DayGroup struct {
	Date        Date
	DaysAway    int
	Occurrences []Occurrence
	Total       decimal.Decimal
}

// Label is "Today", "N days" within the next week, or empty
func (g DayGroup) Label() string {
	switch {
	case g.DaysAway == 0:
		return "Today"
	case g.DaysAway == 1:
		return "1 day"
	case g.DaysAway > 0 && g.DaysAway <= soonDays:
		return fmt.Sprintf("%d days", g.DaysAway)
	default:
		return ""
	}
}

// Projection is the upcoming-charges view: charges in the next N days grouped
// by date, their total, and the monthly average over all subscriptions.
type Projection struct {
	Window         DateRange
	Groups         []DayGroup
	Count          int
	Total          decimal.Decimal
	MonthlyAverage decimal.Decimal
}

// BuildProjection projects charges from today through today+days (inclusive).
// The filter only narrows the upcoming list; MonthlyAverage always covers subs.
func BuildProjection(subs []Subscription, days int, clock Clock, filter Filter) Projection {
	today := NewResolver(clock).today()
	window := DateRange{Start: today, End: AddDays(today, max(days, 0))}

	occurrences := GenerateAll(subs, window, filter)

	p := Projection{
		Window:         window,
		Count:          len(occurrences),
		Total:          SumOccurrences(occurrences),
		MonthlyAverage: EstimateMonthlyAverage(subs, FixedClock(today)),
	}

	for _, o := range occurrences {
		if n := len(p.Groups); n == 0 || p.Groups[n-1].Date != o.Date {
			p.Groups = append(p.Groups, DayGroup{
				Date:     o.Date,
				DaysAway: DaysBetween(today, o.Date),
				Total:    decimal.Zero,
			})
		}
		g := &p.Groups[len(p.Groups)-1]
		g.Occurrences = append(g.Occurrences, o)
		g.Total = g.Total.Add(o.Amount)
	}
	return p
}
