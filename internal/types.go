package internal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription is a recurring charge. StartDate anchors the recurrence and is
// the earliest possible occurrence.
type Subscription struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	StartDate Date            `yaml:"start_date" json:"startDate"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	Enabled   bool            `yaml:"enabled" json:"enabled"`
	AutoRenew bool            `yaml:"auto_renew" json:"autoRenew"` // metadata only
}

// Occurrence is one concrete charge of a subscription
type Occurrence struct {
	SubscriptionID string
	Name           string
	Amount         decimal.Decimal
	Frequency      Frequency
	Date           Date
}

// DateRange is an inclusive [Start, End] window of calendar dates
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d lies within the range (both ends inclusive)
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days in the range, or 0 if End is before Start.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// NewSubscriptionID generates a fresh opaque subscription ID
func NewSubscriptionID() string {
	return "sub_" + uuid.NewString()
}
