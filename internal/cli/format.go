// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// ParseAmount parses a user-supplied monetary value. Unparsable or negative
// input clamps to zero; the ledger then rejects the zero at upsert, so
// garbage always surfaces as a validation error rather than bad stored data.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a monetary value as $1,234.56.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = FormatNumber(n)
	}

	out := "$" + whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRelativeDays renders a signed day offset as human text.
// e.g., 0 -> "today", -3 -> "3d overdue", 5 -> "in 5d"
func FormatRelativeDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	default:
		return fmt.Sprintf("in %dd", days)
	}
}

// StatusLabel returns the short display label for a status.
func StatusLabel(s model.Status) string {
	switch s {
	case model.StatusPaid:
		return "paid"
	case model.StatusOverdue:
		return "overdue"
	case model.StatusDueSoon:
		return "due soon"
	default:
		return "ok"
	}
}

// ShortID truncates a bill id for table display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
