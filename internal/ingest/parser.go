package ingest

import "strings"

// ParseRows splits raw text into rows of string fields using standard
// delimited-text quoting: a field wrapped in quotes may embed delimiters and
// newlines, and a doubled quote inside a quoted field is one literal quote.
//
// Malformed quoting never fails the parse. A quote that opens mid-field is
// kept as a literal character, and an unterminated quote simply reads to the
// end of the input. When skipEmptyLines is set, blank lines are dropped;
// otherwise each survives as a single-empty-field row.
func ParseRows(text string, delimiter string, skipEmptyLines bool) [][]string {
	if text == "" {
		return [][]string{}
	}

	delim := ','
	if delimiter != "" {
		delim = []rune(delimiter)[0]
	}

	rows := [][]string{}
	var row []string
	var field strings.Builder
	inQuotes := false
	fieldStarted := false // any character, quote, or delimiter seen on this line
	atFieldStart := true  // a quote only opens a quoted field here

	endField := func() {
		row = append(row, field.String())
		field.Reset()
		atFieldStart = true
	}
	endLine := func() {
		if !fieldStarted {
			if !skipEmptyLines {
				rows = append(rows, []string{""})
			}
			return
		}
		endField()
		rows = append(rows, row)
		row = nil
		fieldStarted = false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteRune(ch)
			continue
		}

		switch {
		case ch == '"' && atFieldStart:
			inQuotes = true
			fieldStarted = true
			atFieldStart = false
		case ch == delim:
			fieldStarted = true
			endField()
		case ch == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endLine()
		case ch == '\n':
			endLine()
		default:
			field.WriteRune(ch)
			fieldStarted = true
			atFieldStart = false
		}
	}

	// Best-effort tail: flush whatever is pending, including the contents of
	// an unterminated quote.
	if fieldStarted {
		endField()
		rows = append(rows, row)
	}

	return rows
}
