package pipeline

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Normalize projects raw warehouse rows into typed records using the view's
// field map. Rows whose date fails to parse are dropped; a malformed row never
// aborts the batch and no default date is ever substituted. Amount validity is
// an independent gate: malformed amounts coerce to zero. Input order is
// preserved and no deduplication happens here.
func Normalize(rows []RawRow, fields FieldMap) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDate(asString(row[fields.Date]))
		if !ok {
			continue
		}

		rec := Record{
			Date:     date,
			Positive: coerceAmount(row[fields.Positive]),
			Negative: coerceAmount(row[fields.Negative]),
		}
		rec.Net = rec.Positive - rec.Negative

		if fields.Category != "" {
			if v, present := row[fields.Category]; present && v != nil {
				rec.Category = asString(v)
				rec.HasCategory = true
			}
		}

		records = append(records, rec)
	}
	return records
}

// parseDate accepts a YYYY-MM-DD-shaped string. Each component must re-parse
// as a positive integer; anything else rejects the whole value.
func parseDate(s string) (civil.Date, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return civil.Date{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return civil.Date{}, false
		}
		nums[i] = n
	}

	return civil.Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}, true
}

// coerceAmount parses a numeric field leniently: absent, null, empty or
// non-numeric values coerce to exactly zero so NaN never leaks downstream.
func coerceAmount(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return guardNaN(val)
	case float32:
		return guardNaN(float64(val))
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case *big.Rat:
		if val == nil {
			return 0
		}
		f, _ := val.Float64()
		return guardNaN(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return guardNaN(f)
	default:
		return 0
	}
}

func guardNaN(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// asString renders a raw cell for passthrough fields. BigQuery yields typed
// values (civil.Date for DATE columns, *big.Rat for NUMERIC) while the JSON
// proxy yields strings and float64s; both end up as the same text.
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case civil.Date:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case *big.Rat:
		if val == nil {
			return ""
		}
		f, _ := val.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
