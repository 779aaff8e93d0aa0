package internal

import (
	"sort"
	"strings"

	"github.com/samber/mo"
)

// GenerateOccurrences returns every occurrence of sub within [from, to], both
// ends inclusive, in increasing date order. Disabled subscriptions, inverted
// windows and unsupported frequencies all yield nil.
func GenerateOccurrences(sub Subscription, from, to Date) []Occurrence {
	if !sub.Enabled || !sub.Frequency.Valid() || to.Before(from) {
		return nil
	}

	next, k, err := resolve(sub.StartDate, sub.Frequency, from)
	if err != nil {
		return nil
	}

	var occurrences []Occurrence
	for !next.After(to) {
		occurrences = append(occurrences, Occurrence{
			SubscriptionID: sub.ID,
			Name:           sub.Name,
			Amount:         sub.Amount,
			Frequency:      sub.Frequency,
			Date:           next,
		})

		// Always step from the anchor so month-end clamping never accumulates
		k++
		next, err = sub.Frequency.Step(sub.StartDate, k)
		if err != nil {
			break
		}
	}
	return occurrences
}

// Filter narrows which subscriptions take part in a listing or projection
type Filter struct {
	Frequency Frequency // empty means all
	Search    string    // case-insensitive substring of the name
}

// Matches reports whether sub passes the filter
func (f Filter) Matches(sub Subscription) bool {
	if f.Frequency != "" && sub.Frequency != f.Frequency {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(sub.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// GenerateAll merges the occurrences of all subscriptions matching filter within
// window, sorted by date and then by name.
func GenerateAll(subs []Subscription, window DateRange, filter Filter) []Occurrence {
	var all []Occurrence
	for _, sub := range subs {
		if !filter.Matches(sub) {
			continue
		}
		all = append(all, GenerateOccurrences(sub, window.Start, window.End)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date.Before(all[j].Date)
		}
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all
}

// soonDays is how close a charge must be to count as due soon
const soonDays = 7

// NextCharge is a subscription with its next charge date relative to today
type NextCharge struct {
	Subscription Subscription
	Next         Date // zero if the frequency is unsupported
	DaysUntil    int
}

// Soon reports whether the next charge is within a week
func (c NextCharge) Soon() bool {
	return !c.Next.IsZero() && c.DaysUntil <= soonDays
}

// NextCharges resolves the next charge of each subscription matching filter,
// sorted by name. Disabled subscriptions are included; they still have a schedule.
func NextCharges(subs []Subscription, clock Clock, filter Filter) []NextCharge {
	resolver := NewResolver(clock)
	today := resolver.today()

	var charges []NextCharge
	for _, sub := range subs {
		if !filter.Matches(sub) {
			continue
		}
		charge := NextCharge{Subscription: sub}
		if next, err := resolver.Next(sub.StartDate, sub.Frequency, mo.Some(today)); err == nil {
			charge.Next = next
			charge.DaysUntil = DaysBetween(today, next)
		}
		charges = append(charges, charge)
	}

	sort.SliceStable(charges, func(i, j int) bool {
		return strings.ToLower(charges[i].Subscription.Name) < strings.ToLower(charges[j].Subscription.Name)
	})
	return charges
}
