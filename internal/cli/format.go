// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column widths for currency cells in the forecast table.
const (
	MonthlyRevenueWidth    = 7
	CumulativeRevenueWidth = 10
)

// FormatCurrency renders an integer amount as "$" followed by the digits
// right-aligned in width columns, e.g. FormatCurrency(150, 7) -> "$    150".
// Display only; the value is never parsed back.
func FormatCurrency(n int64, width int) string {
	return fmt.Sprintf("$%*d", width, n)
}

// FormatMoney formats an assumption amount, dropping cents when whole.
// e.g., 100 -> "$100", 1234.5 -> "$1,234.50". Amounts beyond the int64
// range are printed without separators.
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	if v >= math.MaxInt64 || math.IsNaN(v) {
		return "$" + strconv.FormatFloat(v, 'f', 2, 64)
	}
	if v == math.Trunc(v) {
		return "$" + FormatNumber(int64(v))
	}
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("$%s.%02d", FormatNumber(whole), cents)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > len(sign) {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 rate as a percentage with at most two
// decimals and no trailing zeros. e.g., 0.03 -> "3%", 0.035 -> "3.5%"
func FormatPercent(f float64) string {
	s := strconv.FormatFloat(f*100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s + "%"
}

// FormatCompact formats a count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
