package internal

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount reads a user-typed amount such as "$1,299.50", dropping anything
// that is not a digit, dot or minus and rounding to cents. Unparseable input is zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := nonAmountChars.ReplaceAllString(s, "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// SubscriptionInput is raw subscription data as typed or imported, before validation
type SubscriptionInput struct {
	ID        string
	Name      string
	Amount    string
	StartDate string
	Frequency string
	AutoRenew bool
	Enabled   bool
}

// ValidateSubscription checks the input and builds a Subscription from it.
// A missing ID is filled in with NewSubscriptionID. On failure the returned
// *ValidationError lists every offending field.
func ValidateSubscription(in SubscriptionInput) (Subscription, error) {
	var invalid []string

	name := strings.TrimSpace(in.Name)
	if name == "" {
		invalid = append(invalid, "name")
	}

	amount := ParseAmount(in.Amount)
	if !amount.IsPositive() {
		invalid = append(invalid, "amount")
	}

	start, err := ParseDate(in.StartDate)
	if err != nil {
		invalid = append(invalid, "startDate")
	}

	freq, err := ParseFrequency(in.Frequency)
	if err != nil {
		invalid = append(invalid, "frequency")
	}

	if len(invalid) > 0 {
		return Subscription{}, &ValidationError{Fields: invalid}
	}

	id := in.ID
	if id == "" {
		id = NewSubscriptionID()
	}

	return Subscription{
		ID:        id,
		Name:      name,
		Amount:    amount,
		StartDate: start,
		Frequency: freq,
		Enabled:   in.Enabled,
		AutoRenew: in.AutoRenew,
	}, nil
}

// ExampleSubscriptions returns two sample subscriptions starting today
func ExampleSubscriptions(clock Clock) []Subscription {
	today := NewResolver(clock).today()
	return []Subscription{
		{
			ID:        NewSubscriptionID(),
			Name:      "Streaming Plus",
			Amount:    decimal.RequireFromString("12.99"),
			StartDate: today,
			Frequency: Monthly,
			Enabled:   true,
			AutoRenew: true,
		},
		{
			ID:        NewSubscriptionID(),
			Name:      "Pro Cloud",
			Amount:    decimal.RequireFromString("99.00"),
			StartDate: today,
			Frequency: Yearly,
			Enabled:   true,
			AutoRenew: true,
		},
	}
}
