package pipeline

import (
	"testing"

	"cloud.google.com/go/civil"
)

func TestBuildTimeSeries_SortsByDate(t *testing.T) {
	records := []Record{
		{Date: civil.Date{Year: 2024, Month: 1, Day: 5}, Net: 80},
		{Date: civil.Date{Year: 2024, Month: 1, Day: 3}, Net: 50},
		{Date: civil.Date{Year: 2024, Month: 1, Day: 4}, Net: -10},
	}

	series := BuildTimeSeries(records)

	if len(series) != 3 {
		t.Fatalf("BuildTimeSeries() returned %d points, want 3", len(series))
	}
	wantKeys := []string{"2024-01-03", "2024-01-04", "2024-01-05"}
	wantValues := []float64{50, -10, 80}
	for i := range series {
		if series[i].Key != wantKeys[i] {
			t.Errorf("point %d key = %q, want %q", i, series[i].Key, wantKeys[i])
		}
		if series[i].Value != wantValues[i] {
			t.Errorf("point %d value = %v, want %v", i, series[i].Value, wantValues[i])
		}
	}
	if series[0].Label != "03 Jan 2024" {
		t.Errorf("point 0 label = %q, want %q", series[0].Label, "03 Jan 2024")
	}
	// Input untouched: the sort works on a copy.
	if records[0].Date.Day != 5 {
		t.Errorf("input records reordered, first day = %d, want 5", records[0].Date.Day)
	}
}

func TestBuildTimeSeries_StableOnSameDay(t *testing.T) {
	day := civil.Date{Year: 2024, Month: 2, Day: 1}
	records := []Record{
		{Date: civil.Date{Year: 2024, Month: 2, Day: 2}, Net: 3},
		{Date: day, Net: 1},
		{Date: day, Net: 2},
	}

	series := BuildTimeSeries(records)

	if len(series) != 3 {
		t.Fatalf("BuildTimeSeries() returned %d points, want 3", len(series))
	}
	// Same-day duplicates stay as separate adjacent points in input order.
	if series[0].Value != 1 || series[1].Value != 2 {
		t.Errorf("same-day points = (%v, %v), want (1, 2)", series[0].Value, series[1].Value)
	}
	if series[2].Value != 3 {
		t.Errorf("last point value = %v, want 3", series[2].Value)
	}
}

func TestBuildCategorySeries_TruncatesBeforeFiltering(t *testing.T) {
	rows := []RawRow{
		{ColAUMRMName: "Anita", ColAUMAmount: "1200000"},
		{ColAUMAmount: "99"}, // no category: dropped after truncation
		{ColAUMRMName: "Ravi", ColAUMAmount: "500"},
	}

	// Cap of 2 keeps rows 0-1 only; the valid row at index 2 never makes it.
	series := BuildCategorySeries(rows, ColAUMRMName, ColAUMAmount, 2)

	if len(series) != 1 {
		t.Fatalf("BuildCategorySeries() returned %d points, want 1", len(series))
	}
	if series[0].Key != "Anita" {
		t.Errorf("point key = %q, want Anita", series[0].Key)
	}
	if series[0].Value != 1200000 {
		t.Errorf("point value = %v, want 1200000", series[0].Value)
	}
	if series[0].Display != "₹12.00 L" {
		t.Errorf("point display = %q, want ₹12.00 L", series[0].Display)
	}
}

func TestBuildCategorySeries_PreservesInputOrder(t *testing.T) {
	rows := []RawRow{
		{ColAUMRMName: "Zoya", ColAUMAmount: float64(10)},
		{ColAUMRMName: "Anita"}, // missing amount coerces to zero
		{ColAUMRMName: nil},     // null category dropped
		{ColAUMRMName: "Meera", ColAUMAmount: "7"},
	}

	series := BuildCategorySeries(rows, ColAUMRMName, ColAUMAmount, DefaultCategoryLimit)

	want := []struct {
		key   string
		value float64
	}{
		{"Zoya", 10},
		{"Anita", 0},
		{"Meera", 7},
	}
	if len(series) != len(want) {
		t.Fatalf("BuildCategorySeries() returned %d points, want %d", len(series), len(want))
	}
	for i, w := range want {
		if series[i].Key != w.key || series[i].Value != w.value {
			t.Errorf("point %d = (%q, %v), want (%q, %v)",
				i, series[i].Key, series[i].Value, w.key, w.value)
		}
	}
}

func TestBranches(t *testing.T) {
	rows := []RawRow{
		{ColBranchCode: "MUM"},
		{ColBranchCode: "DEL"},
		{ColBranchCode: "MUM"}, // duplicate collapses
		{},                     // absent column skipped
		{ColBranchCode: nil},   // null skipped
		{ColBranchCode: "BLR"},
	}

	got := Branches(rows)

	want := []string{"MUM", "DEL", "BLR"}
	if len(got) != len(want) {
		t.Fatalf("Branches() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Branches()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
