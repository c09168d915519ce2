package pipeline

import (
	"context"

	"cloud.google.com/go/civil"
)

// RawRow is one warehouse result record: an untyped mapping from column name
// to value. Any field may be absent, null, or textual even when a number is
// expected; nothing is guaranteed until the row passes through Normalize.
type RawRow map[string]any

// Gateway fetches the fixed analytical query's rows from the warehouse, either
// directly (internal/warehouse) or via the HTTP proxy (internal/dataclient).
type Gateway interface {
	FetchRows(ctx context.Context) ([]RawRow, error)
}

// Record is the typed projection of one RawRow for a view. A Record exists
// only for rows whose date field parsed to a valid calendar date.
type Record struct {
	Date     civil.Date
	Positive float64
	Negative float64
	Net      float64

	// Category is the view's category field (branch code, RM name, client
	// code), passed through unvalidated. HasCategory is false when the
	// column was absent or null for this row.
	Category    string
	HasCategory bool
}

// Point is one chartable (label, value) pair. Key keeps the comparable value
// behind the label (ISO date or category code) for tooltip and sort use, and
// Display carries the money-formatted value so axis ticks and tooltips always
// agree.
type Point struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Series is an ordered sequence of points ready for charting.
type Series []Point
