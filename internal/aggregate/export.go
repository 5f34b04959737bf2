package aggregate

import (
	"strconv"
	"strings"

	"datalens/domain/chart"
)

// Export serializes a projection to delimited text: a header line with the
// resolved x/y key names, then one line per row. Re-parsing the output with
// the same delimiter reproduces the same set of (x, y) pairs.
func Export(rows chart.Rows, delimiter string) string {
	if delimiter == "" {
		delimiter = ","
	}

	var b strings.Builder
	b.WriteString(escapeField(rows.XKey, delimiter))
	b.WriteString(delimiter)
	b.WriteString(escapeField(rows.YKey, delimiter))
	b.WriteByte('\n')

	for _, r := range rows.Rows {
		b.WriteString(escapeField(r.X, delimiter))
		b.WriteString(delimiter)
		b.WriteString(strconv.FormatFloat(r.Y, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

// escapeField quotes a field when it embeds the delimiter, a quote, or a
// newline, doubling any inner quotes.
func escapeField(field, delimiter string) string {
	if !strings.ContainsAny(field, delimiter+"\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
