// Package summary produces a compact, deterministic statistical digest of a
// dataset. The text is opaque to the engine itself: it exists as a bounded
// input artifact for an external text-generation collaborator, and the same
// dataset always yields the same digest so that collaborator stays
// reproducible under test.
package summary

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"datalens/domain/table"
	"datalens/internal/aggregate"
	"datalens/internal/ingest"
)

const (
	maxSampleRows    = 5
	maxExampleValues = 5
)

// Generate renders the digest: dataset cardinality, one statistics line per
// column conditioned on its inferred type, then up to the first five raw rows.
func Generate(ds table.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset: %d rows, %d columns\n", ds.RowCount, len(ds.Headers))

	for _, col := range ds.Columns {
		b.WriteString(describeColumn(ds, col))
		b.WriteByte('\n')
	}

	if ds.RowCount > 0 {
		b.WriteString("Sample rows:\n")
		for i := 0; i < ds.RowCount && i < maxSampleRows; i++ {
			pairs := make([]string, len(ds.Headers))
			for j, header := range ds.Headers {
				pairs[j] = header + ": " + ds.Cell(i, j)
			}
			b.WriteString(strings.Join(pairs, ", "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func describeColumn(ds table.Dataset, col table.Column) string {
	values := ds.ColumnValues(col.Index)

	switch col.Type {
	case table.TypeNumber:
		return describeNumeric(col.Name, values)
	case table.TypeString:
		return describeText(col.Name, values)
	default:
		// Date and boolean columns only report presence.
		return fmt.Sprintf("- %s (%s): %d non-empty values", col.Name, col.Type, countNonEmpty(values))
	}
}

// describeNumeric reports min/max/mean over the successfully parsed values
// only; unparsable cells are skipped, never counted.
func describeNumeric(name string, values []string) string {
	parsed := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := ingest.ParseNumber(v); ok {
			parsed = append(parsed, f)
		}
	}
	if len(parsed) == 0 {
		return fmt.Sprintf("- %s (number): no parseable values", name)
	}

	min, _ := stats.Min(parsed)
	max, _ := stats.Max(parsed)
	mean, _ := stats.Mean(parsed)
	return fmt.Sprintf("- %s (number): min=%s, max=%s, mean=%s over %d parsed values",
		name, formatNum(min), formatNum(max), formatNum(mean), len(parsed))
}

func describeText(name string, values []string) string {
	seen := make(map[string]bool)
	var examples []string // first-seen order keeps the digest stable
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		if len(examples) < maxExampleValues {
			examples = append(examples, v)
		}
	}
	if len(seen) == 0 {
		return fmt.Sprintf("- %s (string): 0 distinct values", name)
	}
	return fmt.Sprintf("- %s (string): %d distinct values (e.g. %s)",
		name, len(seen), strings.Join(examples, ", "))
}

func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

func formatNum(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", aggregate.Round2(v)), "0"), ".")
}
