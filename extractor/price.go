package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/centscape/preview/models"
)

// currencySymbols maps currency symbols to ISO-4217 codes. Checked first
// during detection, in this fixed order.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
	{"₽", "RUB"},
	{"₩", "KRW"},
	{"₪", "ILS"},
}

// currencyWords maps spelled-out currency names to codes. Matched as a
// case-insensitive substring, in this fixed order.
var currencyWords = []struct {
	word string
	code string
}{
	{"dollar", "USD"},
	{"euro", "EUR"},
	{"pound", "GBP"},
	{"rupee", "INR"},
	{"yen", "JPY"},
	{"yuan", "CNY"},
	{"peso", "MXN"},
	{"real", "BRL"},
	{"reais", "BRL"},
}

var (
	// reStripNonPrice removes everything except digits, separators, and
	// the currency symbols that may sit inside a number group.
	reStripNonPrice = regexp.MustCompile(`[^\d.,$€£¥₹]`)

	// reNumberGroup captures the first digit group with optional thousands
	// separators and one decimal point.
	reNumberGroup = regexp.MustCompile(`[\d,]+\.?\d*`)

	reCurrencyCode = regexp.MustCompile(`(?i)\b(USD|EUR|GBP|CAD|AUD|INR|JPY|CNY|CHF|SEK|NOK|DKK|PLN|CZK|HUF|RUB|KRW|SGD|HKD|NZD|BRL|MXN|ARS|CLP|COP|PEN|UYU|VND|THB|MYR|IDR|PHP)\b`)

	reRegionINR = regexp.MustCompile(`(?i)rs\.?|inr`)
	reRegionCAD = regexp.MustCompile(`(?i)cad|canadian`)
	reRegionAUD = regexp.MustCompile(`(?i)aud|australian`)
)

// priceSelectors are site-agnostic structured price locations, tried in
// order before falling back to free-text regex scanning. The a-price
// patterns cover marketplace offscreen-price markup.
var priceSelectors = compileAll(
	".price",
	".product-price",
	".current-price",
	".sale-price",
	".price-current",
	`[data-testid*="price"]`,
	`[class*="price"]`,
	`[id*="price"]`,
	".cost",
	".amount",
	"[data-a-price-whole]",
	".a-price-whole",
	".a-price .a-offscreen",
)

// priceRegexes scan visible page text for locale-aware price shapes.
// The first expression that matches anywhere wins, using its first match.
var priceRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+\.?\d*`),
	regexp.MustCompile(`€[\d,]+\.?\d*`),
	regexp.MustCompile(`£[\d,]+\.?\d*`),
	regexp.MustCompile(`¥[\d,]+\.?\d*`),
	regexp.MustCompile(`₹[\d,]+\.?\d*`),
	regexp.MustCompile(`₽[\d,]+\.?\d*`),
	regexp.MustCompile(`₩[\d,]+\.?\d*`),
	regexp.MustCompile(`₪[\d,]+\.?\d*`),
	regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(USD|EUR|GBP|CAD|AUD|INR|JPY|CNY|CHF|SEK|NOK|DKK|PLN|CZK|HUF|RUB|KRW|SGD|HKD|NZD|BRL|MXN|ARS|CLP|COP|PEN|UYU|VND|THB|MYR|IDR|PHP)`),
	regexp.MustCompile(`(?i)price[:\s]+\$?[\d,]+\.?\d*`),
	regexp.MustCompile(`(?i)[\d,]+\.?\d*\s*(dollars?|euros?|pounds?|rupees?|yen|yuan|pesos?|real|reais)`),
	regexp.MustCompile(`(?i)(USD|EUR|GBP|CAD|AUD|INR|JPY|CNY)\s*[\d,]+\.?\d*`),
}

func compileAll(selectors ...string) []cascadia.Selector {
	out := make([]cascadia.Selector, 0, len(selectors))
	for _, s := range selectors {
		out = append(out, cascadia.MustCompile(s))
	}
	return out
}

// ParsePrice extracts the first monetary value from free text.
// The second return value is false when no numeric group is present.
func ParsePrice(text string) (models.PriceInfo, bool) {
	if text == "" {
		return models.PriceInfo{}, false
	}

	cleaned := reStripNonPrice.ReplaceAllString(text, "")
	group := reNumberGroup.FindString(cleaned)
	if group == "" {
		return models.PriceInfo{}, false
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(group, ",", ""), 64)
	if err != nil {
		return models.PriceInfo{}, false
	}

	return models.PriceInfo{
		Raw:      text,
		Amount:   amount,
		Currency: DetectCurrency(text),
	}, true
}

// DetectCurrency classifies the currency of a price string. Detection order:
// symbol, ISO code token, spelled-out word, regional heuristics, USD default.
func DetectCurrency(text string) string {
	for _, sym := range currencySymbols {
		if strings.Contains(text, sym.symbol) {
			return sym.code
		}
	}

	if m := reCurrencyCode.FindString(text); m != "" {
		return strings.ToUpper(m)
	}

	lower := strings.ToLower(text)
	for _, w := range currencyWords {
		if strings.Contains(lower, w.word) {
			return w.code
		}
	}

	switch {
	case reRegionINR.MatchString(text):
		return "INR"
	case reRegionCAD.MatchString(text):
		return "CAD"
	case reRegionAUD.MatchString(text):
		return "AUD"
	}

	return "USD"
}

// parseAmount extracts the numeric magnitude from a structured price value
// such as an og product:price:amount, tolerating surrounding text.
func parseAmount(s string) float64 {
	group := reNumberGroup.FindString(s)
	if group == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(group, ",", ""), 64)
	if err != nil {
		return 0
	}
	return amount
}
