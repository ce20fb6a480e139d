// Package utils provides common formatting helpers for autodcf reports.
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatAmount formats a number with thousands separators and two decimals,
// e.g. 1234567.891 → "1,234,567.89".
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	s := fmt.Sprintf("%.2f", math.Abs(amount))
	intPart, decPart, _ := strings.Cut(s, ".")

	formatted := groupThousands(intPart) + "." + decPart
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// FormatCompact formats a number in short scale notation.
// e.g., 1500 → "1.5 K", 2500000 → "2.5 M", 7.25e9 → "7.25 B"
func FormatCompact(amount float64) string {
	prefix := ""
	if amount < 0 {
		prefix = "-"
	}
	abs := math.Abs(amount)

	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%s%s T", prefix, formatWithDecimals(abs/1e12))
	case abs >= 1e9:
		return fmt.Sprintf("%s%s B", prefix, formatWithDecimals(abs/1e9))
	case abs >= 1e6:
		return fmt.Sprintf("%s%s M", prefix, formatWithDecimals(abs/1e6))
	case abs >= 1e3:
		return fmt.Sprintf("%s%s K", prefix, formatWithDecimals(abs/1e3))
	default:
		return fmt.Sprintf("%s%s", prefix, formatWithDecimals(abs))
	}
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatTimestamp formats t for report headers, e.g. "19 Oct 2026, 03:04 PM UTC".
func FormatTimestamp(t time.Time) string {
	return t.Format("02 Jan 2006, 03:04 PM MST")
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
