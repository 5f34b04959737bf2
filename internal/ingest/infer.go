package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"datalens/domain/table"
)

// inferenceSampleSize caps how many non-empty values a column contributes to
// type inference.
const inferenceSampleSize = 100

// booleanTokens is the fixed recognized boolean vocabulary, matched
// case-insensitively after trimming.
var booleanTokens = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
	"y": true, "n": true,
	"t": true, "f": true,
	"1": true, "0": true,
}

// datePatterns is the fixed small set of recognized date shapes. Anything
// fancier is out of scope; locale-aware parsing is deliberately not done.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),     // YYYY-MM-DD
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), // MM/DD/YYYY
	regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), // MM-DD-YYYY
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),     // YYYY/MM/DD
}

// InferColumnType assigns exactly one semantic type to a column from its
// values. Rules are evaluated in strict precedence order, first match wins:
// boolean, number, date, string. Empty values are excluded from the sample
// first; a column whose sampled prefix is all-empty is a string column.
//
// Known limitation of the precedence order: a purely 0/1-valued numeric
// column infers boolean. That is the intended heuristic, not a bug.
func InferColumnType(values []string) table.ColumnType {
	sample := make([]string, 0, inferenceSampleSize)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sample = append(sample, v)
		if len(sample) == inferenceSampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return table.TypeString
	}

	if allOf(sample, isBooleanToken) {
		return table.TypeBoolean
	}
	if allOf(sample, isNumeric) {
		return table.TypeNumber
	}
	if allOf(sample, isDate) {
		return table.TypeDate
	}
	return table.TypeString
}

func allOf(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isBooleanToken(v string) bool {
	return booleanTokens[strings.ToLower(v)]
}

func isNumeric(v string) bool {
	_, ok := ParseNumber(v)
	return ok
}

func isDate(v string) bool {
	for _, p := range datePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// ParseNumber parses a raw cell as a finite float64 after normalizing the
// formats the engine tolerates: surrounding and embedded spaces are stripped,
// thousands separators are removed, and a decimal comma becomes a decimal
// point. A lone comma followed by exactly three trailing digits is read as a
// thousands separator rather than a decimal mark.
//
// Every caller treats a false return as a per-cell skip, never a row abort.
func ParseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return 0, false
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// 1,234.56 style: commas are grouping only.
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		if i := strings.Index(s, ","); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
