package internal

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEstimateMonthlyAverage_YearlyCountedOnce(t *testing.T) {
	s := sub("Domain", "12.00", "2023-04-15", Yearly)
	for _, today := range []string{"2024-01-01", "2024-04-14", "2024-04-15", "2024-04-16", "2024-12-31", "2023-04-15", "2023-01-01"} {
		got := EstimateMonthlyAverage([]Subscription{s}, FixedClock(date(today)))
		if !got.Equal(dec("1.00")) {
			t.Errorf("today %s: monthly average = %s, want 1.00", today, got)
		}
	}
}

func TestEstimateMonthlyAverage_Feb29Yearly(t *testing.T) {
	s := sub("Leap", "24", "2024-02-29", Yearly)
	for _, today := range []string{"2024-02-29", "2024-03-01", "2025-02-28", "2025-03-01", "2027-06-30"} {
		got := EstimateMonthlyAverage([]Subscription{s}, FixedClock(date(today)))
		if !got.Equal(dec("2.00")) {
			t.Errorf("today %s: monthly average = %s, want 2.00", today, got)
		}
	}
}

func TestEstimateMonthlyAverage(t *testing.T) {
	tests := []struct {
		name     string
		subs     []Subscription
		today    string
		expected string
	}{
		{
			name:     "empty",
			subs:     nil,
			today:    "2024-01-01",
			expected: "0",
		},
		{
			name:     "monthly",
			subs:     []Subscription{sub("Music", "10.99", "2023-05-10", Monthly)},
			today:    "2024-01-01",
			expected: "10.99",
		},
		{
			name:     "quarterly spread out",
			subs:     []Subscription{sub("Insurance", "300", "2023-02-15", Quarterly)},
			today:    "2024-01-01",
			expected: "100",
		},
		{
			name:     "weekly in a 53-charge year",
			subs:     []Subscription{sub("Paper", "1", "2024-01-01", Weekly)},
			today:    "2024-01-01",
			expected: "4.42",
		},
		{
			name: "mixed",
			subs: []Subscription{
				sub("Music", "10.99", "2023-05-10", Monthly),
				sub("Domain", "12.00", "2023-09-01", Yearly),
			},
			today:    "2024-01-01",
			expected: "11.99",
		},
		{
			name: "disabled ignored",
			subs: func() []Subscription {
				s := sub("Paused", "50", "2023-05-10", Monthly)
				s.Enabled = false
				return []Subscription{s, sub("Music", "5", "2023-05-10", Monthly)}
			}(),
			today:    "2024-01-01",
			expected: "5",
		},
		{
			name:     "starts later in the year",
			subs:     []Subscription{sub("Later", "10", "2024-07-01", Monthly)},
			today:    "2024-01-01",
			expected: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateMonthlyAverage(tt.subs, FixedClock(date(tt.today)))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("monthly average = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestEstimateWindow(t *testing.T) {
	w := EstimateWindow(FixedClock(date("2024-03-01")))
	if w.Start != date("2024-03-01") || w.End != date("2025-02-28") {
		t.Errorf("window = %s..%s, want 2024-03-01..2025-02-28", w.Start, w.End)
	}
	if w.Days() != 365 {
		t.Errorf("window spans %d days, want 365", w.Days())
	}
}

func TestTotalDue(t *testing.T) {
	subs := []Subscription{
		sub("Gym", "10", "2024-01-01", Weekly),
		sub("Cloud", "5.50", "2024-01-31", Monthly),
	}
	window := DateRange{Start: date("2024-02-01"), End: date("2024-02-29")}
	// Gym on 02-05, 02-12, 02-19, 02-26 and Cloud on 02-29
	if got := TotalDue(subs, window); !got.Equal(dec("45.50")) {
		t.Errorf("TotalDue = %s, want 45.50", got)
	}
}

func TestSumOccurrences_KeepsNonPositiveAmounts(t *testing.T) {
	occ := []Occurrence{{Amount: dec("10")}, {Amount: dec("-2.5")}, {Amount: decimal.Zero}}
	if got := SumOccurrences(occ); !got.Equal(dec("7.5")) {
		t.Errorf("SumOccurrences = %s, want 7.5", got)
	}
}

func TestBuildProjection(t *testing.T) {
	clock := FixedClock(date("2024-03-10"))
	subs := []Subscription{
		sub("Gym", "10", "2024-03-03", Weekly),
		sub("Cloud", "5", "2024-01-10", Monthly),
		sub("Domain", "12", "2023-03-17", Yearly),
		sub("Insurance", "300", "2023-12-25", Quarterly),
	}

	p := BuildProjection(subs, 14, clock, Filter{})

	if p.Window.Start != date("2024-03-10") || p.Window.End != date("2024-03-24") {
		t.Fatalf("window = %s..%s", p.Window.Start, p.Window.End)
	}

	type group struct {
		date  string
		label string
		names []string
		total string
	}
	expected := []group{
		{"2024-03-10", "Today", []string{"Cloud", "Gym"}, "15"},
		{"2024-03-17", "7 days", []string{"Domain", "Gym"}, "22"},
		{"2024-03-24", "", []string{"Gym"}, "10"},
	}
	if len(p.Groups) != len(expected) {
		t.Fatalf("got %d groups, want %d", len(p.Groups), len(expected))
	}
	for i, e := range expected {
		g := p.Groups[i]
		var names []string
		for _, o := range g.Occurrences {
			names = append(names, o.Name)
		}
		if g.Date != date(e.date) || g.Label() != e.label || !equalStrings(names, e.names) || !g.Total.Equal(dec(e.total)) {
			t.Errorf("group %d = %s %q %v %s, want %s %q %v %s",
				i, g.Date, g.Label(), names, g.Total, e.date, e.label, e.names, e.total)
		}
	}

	if p.Count != 5 {
		t.Errorf("Count = %d, want 5", p.Count)
	}
	if !p.Total.Equal(dec("47")) {
		t.Errorf("Total = %s, want 47", p.Total)
	}
	// Gym 53*10 + Cloud 12*5 + Domain 12 + Insurance 4*300, over 12
	if !p.MonthlyAverage.Equal(dec("150.17")) {
		t.Errorf("MonthlyAverage = %s, want 150.17", p.MonthlyAverage)
	}
}

func TestBuildProjection_FilterDoesNotNarrowAverage(t *testing.T) {
	clock := FixedClock(date("2024-03-10"))
	subs := []Subscription{
		sub("Cloud", "5", "2024-01-10", Monthly),
		sub("Domain", "120", "2023-03-17", Yearly),
	}

	p := BuildProjection(subs, 30, clock, Filter{Frequency: Yearly})
	if p.Count != 1 || p.Groups[0].Occurrences[0].Name != "Domain" {
		t.Fatalf("expected only the yearly charge, got %d charges", p.Count)
	}
	if !p.MonthlyAverage.Equal(dec("15")) {
		t.Errorf("MonthlyAverage = %s, want 15", p.MonthlyAverage)
	}
}

func TestBuildProjection_NegativeDaysIsToday(t *testing.T) {
	clock := FixedClock(date("2024-03-10"))
	p := BuildProjection([]Subscription{sub("Cloud", "5", "2024-01-10", Monthly)}, -5, clock, Filter{})
	if p.Window.End != p.Window.Start || p.Count != 1 {
		t.Errorf("window %s..%s with %d charges, want today only with 1", p.Window.Start, p.Window.End, p.Count)
	}
}

func TestDayGroup_Label(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{0, "Today"},
		{1, "1 day"},
		{2, "2 days"},
		{7, "7 days"},
		{8, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := (DayGroup{DaysAway: tt.days}).Label(); got != tt.expected {
			t.Errorf("Label(%d) = %q, want %q", tt.days, got, tt.expected)
		}
	}
}
