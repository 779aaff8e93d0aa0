package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FallbackCurrency is used when neither config nor locale name a currency
const FallbackCurrency = "USD"

// Currency formats amounts for display
type Currency struct {
	Code    string // "SEK", "USD", "EUR"
	symbol  string
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// defaultLocaleForCurrency is the "home" locale of each currency, used when
// the currency is chosen explicitly and no system locale was detected.
var defaultLocaleForCurrency = map[string]language.Tag{
	"SEK": language.Swedish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"INR": language.MustParse("en-IN"),
	"PLN": language.Polish,
	"NZD": language.MustParse("en-NZ"),
}

// prefixCurrencies place their symbol before the amount. x/text does not
// expose CLDR symbol positioning, so this is kept by hand.
var prefixCurrencies = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"INR": true, "NZD": true,
}

// GetCurrency returns the Currency for code, formatted with its home locale.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	tag, ok := defaultLocaleForCurrency[code]
	if !ok {
		tag = language.English
	}
	return GetCurrencyWithLocale(code, tag)
}

// GetCurrencyWithLocale returns a Currency with a specific locale for formatting.
func GetCurrencyWithLocale(code string, tag language.Tag) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	c := Currency{
		Code:    code,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}

	unit, err := currency.ParseISO(code)
	switch {
	case err != nil:
		// Unknown code: number formatting still works, the code becomes the symbol
		c.unit = currency.USD
		c.symbol = code
	case symbolOverrides[code] != "":
		c.unit = unit
		c.symbol = symbolOverrides[code]
	default:
		c.unit = unit
		c.symbol = c.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return c
}

// ResolveCurrency picks the display currency: an explicit code wins, then the
// system locale, then FallbackCurrency.
func ResolveCurrency(code string) Currency {
	if code != "" {
		if locale := detectSystemLocale(); locale != "" {
			if localeCode, tag := parseCurrencyFromLocale(locale); strings.EqualFold(localeCode, code) {
				return GetCurrencyWithLocale(code, tag)
			}
		}
		return GetCurrency(code)
	}
	if locale := detectSystemLocale(); locale != "" {
		if localeCode, tag := parseCurrencyFromLocale(locale); localeCode != "" {
			return GetCurrencyWithLocale(localeCode, tag)
		}
	}
	return GetCurrency(FallbackCurrency)
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "pt_BR.UTF-8" -> ("BRL", pt-BR)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.IndexAny(base, ".@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}

// Symbol returns the currency symbol used by Format
func (c Currency) Symbol() string {
	return c.symbol
}

// Format formats an amount with two fraction digits and the currency symbol
func (c Currency) Format(amount decimal.Decimal) string {
	formatted := c.printer.Sprint(number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	if prefixCurrencies[c.Code] {
		if strings.HasPrefix(formatted, "-") {
			return "-" + c.symbol + formatted[1:]
		}
		return c.symbol + formatted
	}
	return formatted + " " + c.symbol
}
