package ingest

import "strings"

// sniffWindow caps how much of the input the delimiter heuristic looks at.
const sniffWindow = 2000

// delimiterCandidates is the fixed candidate set, in tie-break priority order.
var delimiterCandidates = []string{",", ";", "\t", "|"}

// DetectDelimiter picks the most likely field separator by counting literal
// occurrences of each candidate in a prefix of the text. The candidate with
// the highest count wins; when nothing matches, comma is the default.
//
// This is a heuristic, not a parser: delimiters inside quoted fields are
// counted too, so pathological inputs can mis-detect.
func DetectDelimiter(text string) string {
	sample := text
	if len(sample) > sniffWindow {
		sample = sample[:sniffWindow]
	}

	best := ","
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		if n := strings.Count(sample, candidate); n > bestCount {
			best = candidate
			bestCount = n
		}
	}
	return best
}
