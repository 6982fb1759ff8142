// Package models provides the data structures shared by the statement
// parsing pipeline.
package models

// RawLine is one normalized physical line of statement text with its page
// provenance. RawLines are produced once by the extractor and read-only
// thereafter; slice order is statement reading order.
type RawLine struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Texts returns just the textual component of a line sequence, for the
// statement-wide heuristics that scan text repeatedly.
func Texts(lines []RawLine) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Text
	}
	return out
}
