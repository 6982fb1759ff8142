// Package extractor turns raw document text into the deduplicated,
// whitespace-normalized (page, text) line sequence the rest of the pipeline
// consumes. It supports two modes: plain per-page text split into physical
// lines, and word bounding boxes clustered into lines by vertical proximity,
// which reconstructs columnar statements that plain extraction interleaves.
package extractor

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"ledgerlens/internal/grammar"
	"ledgerlens/internal/models"
)

// Mode selects how lines are recovered from a document.
type Mode string

const (
	// ModeText uses per-page plain text split on newlines.
	ModeText Mode = "text"
	// ModeWords rebuilds lines from word bounding boxes.
	ModeWords Mode = "words"
)

// DefaultYTolerance is the vertical clustering tolerance for word mode, in
// document units.
const DefaultYTolerance = 3.0

// Options controls line extraction.
type Options struct {
	// MergeWrapped merges a line into its predecessor when neither starts
	// with a date token nor contains an account header, the signal that the
	// second line is a wrapped continuation of the first's description.
	MergeWrapped bool

	// DropHeaderFooter filters known page boilerplate.
	DropHeaderFooter bool

	// YTolerance overrides the word-mode clustering tolerance; zero uses
	// DefaultYTolerance.
	YTolerance float64
}

// DefaultOptions matches the behavior expected by the statement walker.
func DefaultOptions() Options {
	return Options{MergeWrapped: true, DropHeaderFooter: true}
}

// Backend is the pluggable document reader. The parsing core never touches
// document bytes itself; it only consumes the RawLine sequence a Backend
// produces.
type Backend interface {
	Extract(r io.Reader, mode Mode, opts Options) ([]models.RawLine, error)
}

// Word is one positioned word from a document page. Top grows downward
// (reading order), Left grows rightward.
type Word struct {
	Page int
	Text string
	Left float64
	Top  float64
}

var headerFooterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Page \d+ of \d+$`),
	regexp.MustCompile(`(?i)^Statement Period\b`),
	regexp.MustCompile(`(?i)^Statement of Account\b`),
}

var spaceRunRx = regexp.MustCompile(`[ \t]+`)

// NormalizeText collapses internal whitespace and non-breaking spaces and
// trims the line.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spaceRunRx.ReplaceAllString(s, " "))
}

func isBoilerplate(s string) bool {
	for _, rx := range headerFooterPatterns {
		if rx.MatchString(s) {
			return true
		}
	}
	return false
}

// FromPages converts per-page plain text into the normalized line sequence.
// Page numbers start at 1.
func FromPages(pages []string, opts Options) []models.RawLine {
	var lines []models.RawLine
	for i, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			text := NormalizeText(raw)
			if text == "" {
				continue
			}
			if opts.DropHeaderFooter && isBoilerplate(text) {
				continue
			}
			lines = append(lines, models.RawLine{Page: i + 1, Text: text})
		}
	}
	if opts.MergeWrapped {
		lines = MergeWrapped(lines)
	}
	return lines
}

// FromWords rebuilds physical lines from word boxes: words are ordered by
// top then left, grouped into a line while their top coordinate stays within
// the vertical tolerance of the line's first word, and each group is joined
// left to right.
func FromWords(words []Word, opts Options) []models.RawLine {
	tol := opts.YTolerance
	if tol <= 0 {
		tol = DefaultYTolerance
	}

	byPage := map[int][]Word{}
	var pageOrder []int
	for _, w := range words {
		if _, ok := byPage[w.Page]; !ok {
			pageOrder = append(pageOrder, w.Page)
		}
		byPage[w.Page] = append(byPage[w.Page], w)
	}
	sort.Ints(pageOrder)

	var lines []models.RawLine
	for _, page := range pageOrder {
		ws := byPage[page]
		sort.SliceStable(ws, func(i, j int) bool {
			if ws[i].Top != ws[j].Top {
				return ws[i].Top < ws[j].Top
			}
			return ws[i].Left < ws[j].Left
		})
		var groups [][]Word
		for _, w := range ws {
			if len(groups) == 0 {
				groups = append(groups, []Word{w})
				continue
			}
			last := groups[len(groups)-1]
			if abs(w.Top-last[0].Top) <= tol {
				groups[len(groups)-1] = append(last, w)
			} else {
				groups = append(groups, []Word{w})
			}
		}
		for _, group := range groups {
			sort.SliceStable(group, func(i, j int) bool { return group[i].Left < group[j].Left })
			parts := make([]string, len(group))
			for i, w := range group {
				parts[i] = w.Text
			}
			text := NormalizeText(strings.Join(parts, " "))
			if text == "" {
				continue
			}
			if opts.DropHeaderFooter && isBoilerplate(text) {
				continue
			}
			lines = append(lines, models.RawLine{Page: page, Text: text})
		}
	}
	if opts.MergeWrapped {
		lines = MergeWrapped(lines)
	}
	return lines
}

// MergeWrapped merges wrapped continuation lines into their predecessor. Two
// consecutive same-page lines merge when neither starts with a date token
// nor contains an account header; a date or header always opens a new line.
func MergeWrapped(lines []models.RawLine) []models.RawLine {
	if len(lines) == 0 {
		return lines
	}
	merged := make([]models.RawLine, 0, len(lines))
	for _, ln := range lines {
		if len(merged) == 0 {
			merged = append(merged, ln)
			continue
		}
		prev := &merged[len(merged)-1]
		if ln.Page == prev.Page &&
			!grammar.DatePrefixRx.MatchString(prev.Text) &&
			!grammar.DatePrefixRx.MatchString(ln.Text) &&
			!grammar.AccountHeaderInlineRx.MatchString(prev.Text) &&
			!grammar.AccountHeaderInlineRx.MatchString(ln.Text) {
			prev.Text = prev.Text + " " + ln.Text
		} else {
			merged = append(merged, ln)
		}
	}
	return merged
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
