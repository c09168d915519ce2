package pipeline

import "context"

// State is the observable phase of one fetch-and-transform cycle.
type State string

const (
	// StateLoading means a request is in flight and there is nothing to render.
	StateLoading State = "loading"
	// StateError means the fetch failed or the response shape was invalid;
	// both surface as the same generic failure.
	StateError State = "error"
	// StateReady means rows were fetched and normalized. An empty normalized
	// set is still ready; Snapshot flags it so the caller can render an
	// explicit "no data" affordance instead of an empty chart.
	StateReady State = "ready"
)

// BranchAll selects every branch.
const BranchAll = "ALL"

// View holds the state of one dashboard view across a fetch-and-transform
// cycle. All mutable state belongs to a single rendering context, so View is
// not safe for concurrent use and does not need to be: one view, one
// goroutine. Changing the branch filter re-runs only the synchronous steps
// against rows already in memory; it never refetches.
type View struct {
	gateway Gateway
	fields  FieldMap

	seq    uint64
	state  State
	rows   []RawRow
	branch string
}

// NewView creates a view over the given gateway and field map.
func NewView(gateway Gateway, fields FieldMap) *View {
	return &View{
		gateway: gateway,
		fields:  fields,
		state:   StateLoading,
		branch:  BranchAll,
	}
}

// Refresh runs one full cycle: fetch, then hold the rows for the synchronous
// transform steps. Each refresh takes a new sequence number; if another
// refresh started while this one's fetch was in flight, the late response is
// discarded so a stale fetch can never overwrite newer state. Upstream
// failures abort the cycle entirely, leaving no partial batch behind.
func (v *View) Refresh(ctx context.Context) error {
	v.seq++
	seq := v.seq
	v.state = StateLoading

	rows, err := v.gateway.FetchRows(ctx)

	if seq != v.seq {
		// Superseded by a newer refresh.
		return nil
	}
	if err != nil {
		v.state = StateError
		v.rows = nil
		return err
	}

	v.rows = rows
	v.state = StateReady
	return nil
}

// SetBranch changes the branch filter for subsequent snapshots. It does not
// refetch.
func (v *View) SetBranch(code string) {
	if code == "" {
		code = BranchAll
	}
	v.branch = code
}

// Branch reports the current filter selection.
func (v *View) Branch() string {
	return v.branch
}

// Snapshot runs the synchronous normalize/aggregate/build-series steps over
// the held rows and returns everything the presentation layer renders.
type Snapshot struct {
	State    State    `json:"state"`
	Branch   string   `json:"branch"`
	Branches []string `json:"branches,omitempty"`

	// Empty distinguishes a valid zero-row outcome from an error.
	Empty   bool    `json:"empty"`
	Metrics Metrics `json:"metrics"`
	Series  Series  `json:"series"`
}

// Snapshot builds the renderable snapshot for the current state and filter.
func (v *View) Snapshot() Snapshot {
	snap := Snapshot{State: v.state, Branch: v.branch}
	if v.state != StateReady {
		return snap
	}

	rows := v.filteredRows()
	records := Normalize(rows, v.fields)

	snap.Branches = Branches(v.rows)
	snap.Empty = len(records) == 0
	snap.Metrics = Aggregate(rows, v.fields, ColAUMRMName)
	snap.Series = BuildTimeSeries(records)
	return snap
}

func (v *View) filteredRows() []RawRow {
	if v.branch == BranchAll {
		return v.rows
	}
	var rows []RawRow
	for _, row := range v.rows {
		if code, present := row[ColBranchCode]; present && asString(code) == v.branch {
			rows = append(rows, row)
		}
	}
	return rows
}
