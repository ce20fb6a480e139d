package loader

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/autodcf/pkg/models"
)

// nullTokens are cell contents treated as missing values.
var nullTokens = map[string]bool{
	"":     true,
	"-":    true,
	"--":   true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// DateLayouts are tried in order when a cell is not a number.
var DateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1-2-06",
	"1/2/06",
	"1/2/06 15:04",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
	"Jan-06",
}

var currencySymbols = strings.NewReplacer("$", "", "€", "", "£", "", "₹", "", "¥", "")

// ParseCell converts raw cell text into a typed value: null for blanks and
// null tokens, number for numeric text, date for the known layouts, and
// text otherwise.
func ParseCell(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if nullTokens[strings.ToLower(s)] {
		return models.Null()
	}
	if f, ok := parseNumber(s); ok {
		return models.NumberValue(f)
	}
	if t, ok := parseDate(s); ok {
		return models.DateValue(t)
	}
	return models.TextValue(s)
}

// parseNumber handles thousands separators, currency symbols, a trailing
// percent sign and accounting negatives such as (1,234).
func parseNumber(s string) (float64, bool) {
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = currencySymbols.Replace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if negative {
		d = d.Neg()
	}
	return d.InexactFloat64(), true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
