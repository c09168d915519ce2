package pipeline

import (
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// FormatCurrency renders a monetary value on the Indian magnitude ladder:
// crores above 1,00,00,000, lakhs above 1,00,000, thousands above 1,000,
// else the plain value to two decimals. Thresholds test the absolute value
// while the sign stays on the scaled number. Every axis tick and tooltip in
// the dashboard goes through this one function so they can never disagree.
func FormatCurrency(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 10000000:
		return fmt.Sprintf("₹%.2f Cr", v/10000000)
	case abs >= 100000:
		return fmt.Sprintf("₹%.2f L", v/100000)
	case abs >= 1000:
		return fmt.Sprintf("₹%.2fk", v/1000)
	default:
		return fmt.Sprintf("₹%.2f", v)
	}
}

// FormatDate renders a calendar date as day/short-month/year in the fixed
// dashboard locale, e.g. "05 Jan 2024". Out-of-range components roll over the
// same way the browser's Date constructor does.
func FormatDate(d civil.Date) string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("02 Jan 2006")
}
