package pipeline

import "sort"

// DefaultCategoryLimit caps how many raw rows feed a category series.
const DefaultCategoryLimit = 30

// BuildTimeSeries produces one point per record, sorted ascending by date.
// The sort is stable: same-day records keep their relative input order, and
// same-day duplicates stay as separate adjacent points (no bucketing).
func BuildTimeSeries(records []Record) Series {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	series := make(Series, 0, len(sorted))
	for _, rec := range sorted {
		series = append(series, Point{
			Key:     rec.Date.String(),
			Label:   FormatDate(rec.Date),
			Value:   rec.Net,
			Display: FormatCurrency(rec.Net),
		})
	}
	return series
}

// BuildCategorySeries maps the first limit raw rows to (category, amount)
// points. The cap applies BEFORE any filtering, so a malformed row inside the
// window shrinks the series even when valid rows exist past the cap; the
// deployed dashboard truncates in that order and consumers expect it. Rows
// whose category column is absent or null are dropped; a missing amount
// coerces to zero. No sorting: output order equals the truncated input order.
func BuildCategorySeries(rows []RawRow, categoryColumn, amountColumn string, limit int) Series {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	series := make(Series, 0, len(rows))
	for _, row := range rows {
		v, present := row[categoryColumn]
		if !present || v == nil {
			continue
		}
		amount := coerceAmount(row[amountColumn])
		series = append(series, Point{
			Key:     asString(v),
			Label:   asString(v),
			Value:   amount,
			Display: FormatCurrency(amount),
		})
	}
	return series
}

// Branches returns the distinct branch codes in input order, for the view's
// filter control.
func Branches(rows []RawRow) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, row := range rows {
		v, present := row[ColBranchCode]
		if !present || v == nil {
			continue
		}
		code := asString(v)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
