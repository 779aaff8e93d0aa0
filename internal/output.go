package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

const maxNameWidth = 40

// OutputOptions controls how subscriptions are displayed
type OutputOptions struct {
	Currency Currency
	Config   *Config
}

// JSONListOutput is the root JSON object of the list view
type JSONListOutput struct {
	Subscriptions []JSONSubscription `json:"subscriptions"`
	Summary       JSONSummary        `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count          int             `json:"count"`
	Enabled        int             `json:"enabled"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"`
	Currency       string          `json:"currency"`
}

// JSONSubscription is the JSON output format for a subscription
type JSONSubscription struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PerYear     decimal.Decimal `json:"per_year"`
	Frequency   string          `json:"frequency"`
	StartDate   string          `json:"start_date"`
	NextCharge  string          `json:"next_charge,omitempty"`
	DaysUntil   *int            `json:"days_until,omitempty"`
	Enabled     bool            `json:"enabled"`
	AutoRenew   bool            `json:"auto_renew"`
}

// JSONProjectionOutput is the root JSON object of the upcoming view
type JSONProjectionOutput struct {
	From           string           `json:"from"`
	To             string           `json:"to"`
	Charges        []JSONOccurrence `json:"charges"`
	Count          int              `json:"count"`
	Total          decimal.Decimal  `json:"total"`
	MonthlyAverage decimal.Decimal  `json:"monthly_average"`
	Currency       string           `json:"currency"`
}

// JSONOccurrence is one upcoming charge
type JSONOccurrence struct {
	Date           string          `json:"date"`
	DaysAway       int             `json:"days_away"`
	SubscriptionID string          `json:"subscription_id"`
	Name           string          `json:"name"`
	Frequency      string          `json:"frequency"`
	Amount         decimal.Decimal `json:"amount"`
}

// JSONEstimateOutput is the JSON form of the estimate view
type JSONEstimateOutput struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	AnnualTotal    decimal.Decimal `json:"annual_total"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"`
	Currency       string          `json:"currency"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSubscriptionsJSON outputs the list view in JSON format
func PrintSubscriptionsJSON(w io.Writer, charges []NextCharge, monthlyAverage decimal.Decimal, opts OutputOptions) error {
	out := JSONListOutput{Subscriptions: []JSONSubscription{}}
	for _, c := range charges {
		sub := c.Subscription
		js := JSONSubscription{
			ID:          sub.ID,
			Name:        sub.Name,
			Description: opts.Config.GetDescription(sub.Name),
			Tags:        opts.Config.GetTags(sub.Name),
			Amount:      sub.Amount,
			PerYear:     nominalYearly(sub),
			Frequency:   string(sub.Frequency),
			StartDate:   sub.StartDate.String(),
			Enabled:     sub.Enabled,
			AutoRenew:   sub.AutoRenew,
		}
		if !c.Next.IsZero() {
			days := c.DaysUntil
			js.NextCharge = c.Next.String()
			js.DaysUntil = &days
		}
		if sub.Enabled {
			out.Summary.Enabled++
		}
		out.Subscriptions = append(out.Subscriptions, js)
	}
	out.Summary.Count = len(out.Subscriptions)
	out.Summary.MonthlyAverage = monthlyAverage
	out.Summary.Currency = opts.Currency.Code
	return writeJSON(w, out)
}

// PrintSubscriptionsTable outputs the list view as a formatted table
func PrintSubscriptionsTable(w io.Writer, charges []NextCharge, monthlyAverage decimal.Decimal, opts OutputOptions) {
	enabledCount := 0
	for _, c := range charges {
		if c.Subscription.Enabled {
			enabledCount++
		}
	}
	fmt.Fprintf(w, "%d subscriptions (%d enabled, %d disabled)\n\n",
		len(charges), enabledCount, len(charges)-enabledCount)

	cfg := opts.Config
	hasDescriptions := false
	for _, c := range charges {
		if cfg.GetDescription(c.Subscription.Name) != "" {
			hasDescriptions = true
			break
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Name"}
	if hasDescriptions {
		header = append(header, "Description")
	}
	header = append(header, "Frequency", "Started", "Next Charge", "Amount", "Per Year", "ID")
	t.AppendHeader(header)

	for _, c := range charges {
		sub := c.Subscription

		name := Truncate(sub.Name, maxNameWidth)
		if !sub.Enabled {
			name = text.FgHiBlack.Sprint(name + " (disabled)")
		}

		next := text.FgHiBlack.Sprint("-")
		if !c.Next.IsZero() {
			next = c.Next.String()
			if c.Soon() && sub.Enabled {
				next = text.FgYellow.Sprintf("%s (%s)", next, daysLabel(c.DaysUntil))
			}
		}

		row := table.Row{name}
		if hasDescriptions {
			row = append(row, cfg.GetDescription(sub.Name))
		}
		row = append(row, string(sub.Frequency), sub.StartDate.String(), next,
			opts.Currency.Format(sub.Amount), opts.Currency.Format(nominalYearly(sub)), sub.ID)
		t.AppendRow(row)
	}

	t.AppendSeparator()

	footer := table.Row{""}
	if hasDescriptions {
		footer = append(footer, "")
	}
	footer = append(footer, "", "", text.Bold.Sprint("Monthly average"), text.Bold.Sprint(opts.Currency.Format(monthlyAverage)), "", "")
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align Amount and Per Year (the two columns before ID)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(header) - 2, Align: text.AlignRight},
		{Number: len(header) - 1, Align: text.AlignRight},
	})

	t.Render()
}

// PrintProjectionJSON outputs the upcoming view in JSON format
func PrintProjectionJSON(w io.Writer, p Projection, opts OutputOptions) error {
	out := JSONProjectionOutput{
		From:           p.Window.Start.String(),
		To:             p.Window.End.String(),
		Charges:        []JSONOccurrence{},
		Count:          p.Count,
		Total:          p.Total,
		MonthlyAverage: p.MonthlyAverage,
		Currency:       opts.Currency.Code,
	}
	for _, g := range p.Groups {
		for _, o := range g.Occurrences {
			out.Charges = append(out.Charges, JSONOccurrence{
				Date:           o.Date.String(),
				DaysAway:       g.DaysAway,
				SubscriptionID: o.SubscriptionID,
				Name:           o.Name,
				Frequency:      string(o.Frequency),
				Amount:         o.Amount,
			})
		}
	}
	return writeJSON(w, out)
}

// PrintProjectionTable outputs the upcoming view, one block of rows per date
func PrintProjectionTable(w io.Writer, p Projection, filter Filter, opts OutputOptions) {
	showing := "all frequencies"
	if filter.Frequency != "" {
		showing = string(filter.Frequency)
	}
	if filter.Search != "" {
		showing += fmt.Sprintf(", matching %q", filter.Search)
	}
	fmt.Fprintf(w, "Upcoming charges %s to %s (%d days)\n", p.Window.Start, p.Window.End, p.Window.Days())
	fmt.Fprintf(w, "Showing: %s\n\n", showing)

	if p.Count == 0 {
		fmt.Fprintln(w, "No upcoming charges in this window.")
		fmt.Fprintf(w, "Monthly average: %s\n", opts.Currency.Format(p.MonthlyAverage))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "When", "Name", "Frequency", "Amount"})

	for i, g := range p.Groups {
		if i > 0 {
			t.AppendSeparator()
		}
		when := g.Label()
		switch {
		case g.DaysAway == 0:
			when = text.FgGreen.Sprint(when)
		case when != "":
			when = text.FgYellow.Sprint(when)
		}
		for j, o := range g.Occurrences {
			date := g.Date.Weekday().String()[:3] + " " + g.Date.String()
			if j > 0 {
				date, when = "", ""
			}
			t.AppendRow(table.Row{date, when, Truncate(o.Name, maxNameWidth), string(o.Frequency), opts.Currency.Format(o.Amount)})
		}
		if len(g.Occurrences) > 1 {
			t.AppendRow(table.Row{"", "", "", text.FgHiBlack.Sprint("day total"), text.FgHiBlack.Sprint(opts.Currency.Format(g.Total))})
		}
	}

	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprintf("Due in %d days", p.Window.Days()-1), text.Bold.Sprint(opts.Currency.Format(p.Total))})
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Monthly average"), text.Bold.Sprint(opts.Currency.Format(p.MonthlyAverage))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

// PrintEstimate outputs the monthly estimate and the annual total behind it
func PrintEstimate(w io.Writer, window DateRange, annual, monthly decimal.Decimal, jsonOutput bool, opts OutputOptions) error {
	if jsonOutput {
		return writeJSON(w, JSONEstimateOutput{
			From:           window.Start.String(),
			To:             window.End.String(),
			AnnualTotal:    annual,
			MonthlyAverage: monthly,
			Currency:       opts.Currency.Code,
		})
	}
	fmt.Fprintf(w, "Charges %s to %s: %s\n", window.Start, window.End, opts.Currency.Format(annual))
	fmt.Fprintf(w, "Average per month:        %s\n", opts.Currency.Format(monthly))
	return nil
}

// nominalYearly is amount times the nominal charges per year, zero for
// disabled subscriptions. The monthly average counts real charges instead.
func nominalYearly(sub Subscription) decimal.Decimal {
	if !sub.Enabled {
		return decimal.Zero
	}
	return sub.Amount.Mul(decimal.NewFromInt(int64(sub.Frequency.PerYear())))
}

func daysLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "in 1 day"
	default:
		return "in " + fmt.Sprint(days) + " days"
	}
}

// Truncate shortens s to maxLen runes, marking the cut with ".."
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen || maxLen < 3 {
		return s
	}
	return strings.TrimSpace(string(r[:maxLen-2])) + ".."
}
