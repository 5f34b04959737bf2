package chart

import "datalens/domain/table"

// Aggregation controls how rows sharing an x-value collapse into one plotted
// value.
type Aggregation string

const (
	AggNone  Aggregation = "none"
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggCount Aggregation = "count"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// ParseAggregation maps external input (human or AI supplied) onto the closed
// aggregation set. Unrecognized input falls back to AggNone.
func ParseAggregation(s string) Aggregation {
	switch Aggregation(table.Normalize(s)) {
	case AggSum, AggAvg, AggCount, AggMin, AggMax:
		return Aggregation(table.Normalize(s))
	default:
		return AggNone
	}
}

// SortOrder is the tri-state ordering applied to plotted rows. Sorting is
// always on the numeric y-value; x is never a sort key.
type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps external input onto the sort order set, defaulting to
// SortNone.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(table.Normalize(s)) {
	case SortAsc, SortDesc:
		return SortOrder(table.Normalize(s))
	default:
		return SortNone
	}
}

// DefaultLimit is the UI-facing default for the maximum number of plotted
// rows. NoLimit is the sentinel callers pass when they effectively want the
// whole result.
const (
	DefaultLimit = 20
	NoLimit      = 1<<31 - 1
)

// CountKey is the synthesized y-field name used by count aggregations, which
// need no y-column at all.
const CountKey = "count"

// Spec is an external request describing which columns and aggregation to
// project into plottable rows. Column names are resolved against the live
// dataset case-insensitively at aggregation time.
type Spec struct {
	XAxis       string      `json:"x_axis"`
	YAxis       string      `json:"y_axis"`
	Aggregation Aggregation `json:"aggregation"`
}

// Row is one plotting-ready point: the x category and its numeric y value.
type Row struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Rows is an ordered, size-bounded projection of a dataset, ready for direct
// hand-off to a charting collaborator or for export to delimited text. XKey
// and YKey carry the resolved column names so an export round-trips.
type Rows struct {
	XKey string `json:"x_key"`
	YKey string `json:"y_key"`
	Rows []Row  `json:"rows"`
}

// Empty returns the defined "cannot render" signal: a projection with no
// rows. The pipeline never errors; this is its only failure state.
func Empty() Rows {
	return Rows{Rows: []Row{}}
}
