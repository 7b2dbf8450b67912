// Package format turns session pricing data into display strings.
package format

import (
	"fmt"
	"math"
	"strings"

	"stockbar/internal/models"
)

// Price renders a session's pricing fields for display.
//
// An absent price renders as "N/A". A present price renders to two decimals,
// followed by the available change parts in parentheses: percent first, then
// absolute change, comma separated. With neither change field present the
// bare price is returned.
func Price(sp models.SessionPrice) string {
	if sp.Price == nil {
		return "N/A"
	}

	price := fmt.Sprintf("%.2f", *sp.Price)

	var parts []string
	if p := Percent(sp.ChangePercent); p != "" {
		parts = append(parts, p)
	}
	if c := Change(sp.Change); c != "" {
		parts = append(parts, c)
	}

	if len(parts) == 0 {
		return price
	}
	return fmt.Sprintf("%s (%s)", price, strings.Join(parts, ", "))
}

// Percent renders a fractional change percentage (0.0123 = 1.23%) as a
// sign-prefixed percentage to two decimals, or "" when absent.
func Percent(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s%.2f%%", sign(*v), math.Abs(*v)*100)
}

// Change renders an absolute price change as a sign-prefixed value to two
// decimals, or "" when absent.
func Change(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s%.2f", sign(*v), math.Abs(*v))
}

func sign(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}
