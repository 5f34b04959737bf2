// Package aggregate turns a dataset plus a chart specification into an
// ordered, size-bounded sequence of plotting rows: resolve the axis columns,
// collapse rows per distinct x-value (or pass them through raw), sort on the
// numeric y, and truncate to the caller's limit.
//
// The pipeline never errors. Whenever the inputs cannot produce a meaningful
// chart — unresolvable x-column, empty dataset, every row filtered — it
// returns an empty projection and the caller surfaces that as "nothing to
// show".
package aggregate

import (
	"math"
	"sort"
	"strings"

	"datalens/domain/chart"
	"datalens/domain/table"
	"datalens/internal/ingest"
)

// group is the transient per-distinct-x accumulator. It lives only for the
// duration of one Run call.
type group struct {
	key   string
	sum   float64
	count int
	min   float64
	max   float64
	seen  bool // at least one numeric y observed
}

// Run projects ds into plotting rows per spec. order sorts on the numeric y
// when not SortNone; limit truncates last (values <= 0 mean the default,
// chart.NoLimit effectively disables truncation).
//
// Within one call, group discovery order and within-group accumulation follow
// dataset row order exactly, and the sort is stable, so ties resolve
// deterministically.
func Run(ds table.Dataset, spec chart.Spec, order chart.SortOrder, limit int) chart.Rows {
	if limit <= 0 {
		limit = chart.DefaultLimit
	}

	xCol, ok := ds.ColumnByName(spec.XAxis)
	if !ok {
		return chart.Empty()
	}
	yCol, yResolved := ds.ColumnByName(spec.YAxis)

	var out chart.Rows
	switch {
	case spec.Aggregation == chart.AggNone:
		if !yResolved {
			return chart.Empty()
		}
		out = rawRows(ds, xCol, yCol, limit)
	case spec.Aggregation == chart.AggCount:
		// Count needs no y-values; its y-field is always the literal "count".
		out = groupedRows(ds, spec.Aggregation, xCol, yCol, yResolved)
		out.YKey = chart.CountKey
	default:
		if !yResolved {
			return chart.Empty()
		}
		out = groupedRows(ds, spec.Aggregation, xCol, yCol, true)
	}

	sortRows(out.Rows, order)
	if len(out.Rows) > limit {
		out.Rows = out.Rows[:limit]
	}
	return out
}

// groupedRows scans every dataset row once, maintaining one running group per
// distinct trimmed x-value, then reduces each group to a single rounded
// output value in discovery order.
func groupedRows(ds table.Dataset, agg chart.Aggregation, xCol, yCol table.Column, yResolved bool) chart.Rows {
	groups := make(map[string]*group)
	var discovered []*group

	for i := 0; i < ds.RowCount; i++ {
		x := strings.TrimSpace(ds.Cell(i, xCol.Index))
		if x == "" {
			// Undefined categories are never charted.
			continue
		}
		g := groups[x]
		if g == nil {
			g = &group{key: x}
			groups[x] = g
			discovered = append(discovered, g)
		}

		if agg == chart.AggCount {
			g.count++
			continue
		}
		if !yResolved {
			continue
		}
		y, ok := ingest.ParseNumber(ds.Cell(i, yCol.Index))
		if !ok {
			// Per-cell skip: the group keeps its count, min, and max.
			continue
		}
		if !g.seen || y < g.min {
			g.min = y
		}
		if !g.seen || y > g.max {
			g.max = y
		}
		g.sum += y
		g.count++
		g.seen = true
	}

	rows := make([]chart.Row, 0, len(discovered))
	for _, g := range discovered {
		rows = append(rows, chart.Row{X: g.key, Y: reduce(g, agg)})
	}
	return chart.Rows{XKey: xCol.Name, YKey: yCol.Name, Rows: rows}
}

// reduce collapses one finished group to its output value. Min and max of a
// group that never saw a numeric value report 0, not "missing" — the
// sentinel-reset policy charts depend on today.
func reduce(g *group, agg chart.Aggregation) float64 {
	switch agg {
	case chart.AggSum:
		return Round2(g.sum)
	case chart.AggAvg:
		if g.count == 0 {
			return 0
		}
		return Round2(g.sum / float64(g.count))
	case chart.AggCount:
		return float64(g.count)
	case chart.AggMin:
		if !g.seen {
			return 0
		}
		return Round2(g.min)
	case chart.AggMax:
		if !g.seen {
			return 0
		}
		return Round2(g.max)
	default:
		return 0
	}
}

// rawRows maps up to 2×limit rows straight to points, dropping any row whose
// y-cell is not a finite number. Grabbing more than the limit up front leaves
// headroom for drops before the final truncation.
func rawRows(ds table.Dataset, xCol, yCol table.Column, limit int) chart.Rows {
	grab := ds.RowCount
	if grab > 2*limit {
		grab = 2 * limit
	}

	rows := make([]chart.Row, 0, grab)
	for i := 0; i < grab; i++ {
		y, ok := ingest.ParseNumber(ds.Cell(i, yCol.Index))
		if !ok {
			continue
		}
		rows = append(rows, chart.Row{X: ds.Cell(i, xCol.Index), Y: y})
	}
	return chart.Rows{XKey: xCol.Name, YKey: yCol.Name, Rows: rows}
}

// sortRows applies the tri-state order as a stable sort on y only.
func sortRows(rows []chart.Row, order chart.SortOrder) {
	switch order {
	case chart.SortAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Y < rows[j].Y })
	case chart.SortDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Y > rows[j].Y })
	}
}

// Round2 rounds half-up to two decimal places, matching the charting
// collaborator's display precision.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
