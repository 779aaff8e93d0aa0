package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimpleJSONSubscription is one record of the simple JSON format. The whole
// file is an array of these:
//
//	[
//	  {"id": "sub_1", "name": "Netflix", "amount": 9.99, "startDate": "2025-01-15",
//	   "frequency": "monthly", "autoRenew": true, "enabled": true}
//	]
//
// id is optional; enabled defaults to true when omitted.
type SimpleJSONSubscription struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	Amount    json.Number `json:"amount"`
	StartDate string      `json:"startDate"`
	Frequency string      `json:"frequency"`
	AutoRenew bool        `json:"autoRenew"`
	Enabled   *bool       `json:"enabled,omitempty"`
}

// ImportSimpleJSON reads and validates subscriptions from a simple JSON file
func ImportSimpleJSON(path string) ([]Subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var records []SimpleJSONSubscription
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var subs []Subscription
	for i, rec := range records {
		sub, err := ValidateSubscription(SubscriptionInput{
			ID:        rec.ID,
			Name:      rec.Name,
			Amount:    rec.Amount.String(),
			StartDate: rec.StartDate,
			Frequency: rec.Frequency,
			AutoRenew: rec.AutoRenew,
			Enabled:   rec.Enabled == nil || *rec.Enabled,
		})
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i+1, rec.Name, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func init() {
	RegisterImporter("simple-json", ImporterFunc(ImportSimpleJSON))
}
