package internal

import (
	"testing"

	"github.com/shopspring/decimal"
)

// clearLocaleEnv makes locale detection see nothing from the environment or the OS
func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LC_MONETARY", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	skipSystemLocale = true
	t.Cleanup(func() { skipSystemLocale = false })
}

func TestGetCurrency_KnownCurrencies(t *testing.T) {
	codes := []string{"SEK", "USD", "EUR", "GBP", "NOK", "DKK", "CHF", "JPY", "CAD", "AUD", "BRL"}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			c := GetCurrency(code)
			if c.Code != code {
				t.Errorf("Code = %q, want %q", c.Code, code)
			}
			if c.Symbol() == "" {
				t.Errorf("empty symbol for %s", code)
			}
			// Verify it can format without panicking
			_ = c.Format(decimal.NewFromInt(1234))
		})
	}
}

func TestGetCurrency_CaseInsensitive(t *testing.T) {
	tests := []string{"sek", "Sek", "SEK", " seK "}
	for _, code := range tests {
		c := GetCurrency(code)
		if c.Code != "SEK" {
			t.Errorf("GetCurrency(%q).Code = %q, want SEK", code, c.Code)
		}
	}
}

func TestGetCurrency_Unknown(t *testing.T) {
	c := GetCurrency("XYZ")
	if c.Code != "XYZ" {
		t.Errorf("Code = %q, want XYZ", c.Code)
	}
	// Unknown currency should use code as symbol
	formatted := c.Format(dec("100"))
	if formatted != "100.00 XYZ" {
		t.Errorf("Format(100) = %q, want %q", formatted, "100.00 XYZ")
	}
}

func TestCurrency_Format(t *testing.T) {
	// Note: x/text uses non-breaking space (U+00A0) for Swedish thousand separators
	nbsp := "\u00a0"

	tests := []struct {
		name   string
		code   string
		amount string
		want   string
	}{
		{"SEK small", "SEK", "12.99", "12,99 kr"},
		{"SEK thousands", "SEK", "1234", "1" + nbsp + "234,00 kr"},
		{"USD cents", "USD", "12.99", "$12.99"},
		{"USD whole", "USD", "100", "$100.00"},
		{"USD thousands", "USD", "1234.5", "$1,234.50"},
		{"USD negative", "USD", "-5", "-$5.00"},
		{"EUR thousands", "EUR", "1234", "1.234,00 €"},
		{"GBP small", "GBP", "9.5", "£9.50"},
		{"CHF thousands", "CHF", "1234", "1.234,00 CHF"},
		{"BRL thousands", "BRL", "1234", "1.234,00 R$"},
		{"Unknown thousands", "XYZ", "1234", "1,234.00 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetCurrency(tt.code)
			got := c.Format(dec(tt.amount))
			if got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestParseCurrencyFromLocale(t *testing.T) {
	tests := []struct {
		locale       string
		wantCurrency string
		wantTag      string
	}{
		{"sv_SE.UTF-8", "SEK", "sv-SE"},
		{"en_US.UTF-8", "USD", "en-US"},
		{"pt_BR.UTF-8", "BRL", "pt-BR"},
		{"de_DE", "EUR", "de-DE"},
		{"ja_JP.UTF-8", "JPY", "ja-JP"},
		{"en_GB.UTF-8", "GBP", "en-GB"},
		{"de_DE@euro", "EUR", "de-DE"},
		{"C", "", ""},
		{"en", "", ""}, // No region
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			gotCurrency, gotTag := parseCurrencyFromLocale(tt.locale)
			if gotCurrency != tt.wantCurrency {
				t.Errorf("parseCurrencyFromLocale(%q) currency = %q, want %q", tt.locale, gotCurrency, tt.wantCurrency)
			}
			if tt.wantTag != "" && gotTag.String() != tt.wantTag {
				t.Errorf("parseCurrencyFromLocale(%q) tag = %q, want %q", tt.locale, gotTag.String(), tt.wantTag)
			}
		})
	}
}

func TestResolveCurrency(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		lcMonetary string
		lcAll      string
		lang       string
		wantCode   string
	}{
		{
			name:     "explicit code wins over locale",
			code:     "EUR",
			lang:     "sv_SE.UTF-8",
			wantCode: "EUR",
		},
		{
			name:       "LC_MONETARY takes priority",
			lcMonetary: "sv_SE.UTF-8",
			lcAll:      "en_US.UTF-8",
			lang:       "de_DE.UTF-8",
			wantCode:   "SEK",
		},
		{
			name:     "LC_ALL when LC_MONETARY empty",
			lcAll:    "en_US.UTF-8",
			lang:     "de_DE.UTF-8",
			wantCode: "USD",
		},
		{
			name:     "LANG as fallback",
			lang:     "de_DE.UTF-8",
			wantCode: "EUR",
		},
		{
			name:       "Skip C locale",
			lcMonetary: "C",
			lcAll:      "POSIX",
			lang:       "nb_NO.UTF-8",
			wantCode:   "NOK",
		},
		{
			name:     "nothing detected falls back",
			wantCode: FallbackCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLocaleEnv(t)
			t.Setenv("LC_MONETARY", tt.lcMonetary)
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LANG", tt.lang)

			if got := ResolveCurrency(tt.code); got.Code != tt.wantCode {
				t.Errorf("ResolveCurrency(%q).Code = %q, want %q", tt.code, got.Code, tt.wantCode)
			}
		})
	}
}

func TestResolveCurrency_MatchingLocaleKeepsTag(t *testing.T) {
	clearLocaleEnv(t)
	t.Setenv("LC_MONETARY", "en_US.UTF-8")

	c := ResolveCurrency("usd")
	if c.Code != "USD" {
		t.Fatalf("Code = %q, want USD", c.Code)
	}
	if got := c.Format(dec("1234")); got != "$1,234.00" {
		t.Errorf("Format(1234) = %q, want %q", got, "$1,234.00")
	}
}
