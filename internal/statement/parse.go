package statement

import (
	"bytes"
	"io"

	"ledgerlens/internal/extractor"
	"ledgerlens/internal/hints"
	"ledgerlens/internal/logging"
	"ledgerlens/internal/models"
	"ledgerlens/internal/profiler"
	"ledgerlens/internal/reconcile"
)

// Result is everything one statement parse produces: the reconciled ledger
// records, the date-prefixed lines no grammar accepted, the raw line echo,
// and the profile the heuristics settled on.
type Result struct {
	Records  []models.Record  `json:"records"`
	Unparsed []string         `json:"unparsed"`
	RawLines []models.RawLine `json:"raw_lines"`
	Profile  models.Profile   `json:"profile"`
}

// Parser parses statements. It holds only configuration; each Parse call is
// independent and a single Parser is safe for concurrent use.
type Parser struct {
	log       logging.Logger
	hints     *hints.Set
	reconcile reconcile.Options
	extract   extractor.Options
}

// New returns a Parser with default options.
func New() *Parser {
	return &Parser{
		log:       logging.GetLogger(),
		reconcile: reconcile.DefaultOptions(),
		extract:   extractor.DefaultOptions(),
	}
}

// SetLogger replaces the parser's logger. Nil is ignored.
func (p *Parser) SetLogger(logger logging.Logger) {
	if logger != nil {
		p.log = logger
	}
}

// SetHints replaces the keyword vocabulary used for sign inference.
func (p *Parser) SetHints(h *hints.Set) {
	p.hints = h
}

// SetReconcileOptions overrides the reconciliation pass options.
func (p *Parser) SetReconcileOptions(opts reconcile.Options) {
	p.reconcile = opts
}

// SetExtractOptions overrides the line-extraction options ParseDocument uses.
func (p *Parser) SetExtractOptions(opts extractor.Options) {
	p.extract = opts
}

// Parse reconstructs the ledger from an already-extracted line sequence.
// This is the pure core entry point: same lines in, same records out, no
// side effects. Lines that began with a date token but matched no grammar
// are reported in Result.Unparsed, never silently dropped.
func (p *Parser) Parse(lines []models.RawLine) *Result {
	if len(lines) == 0 {
		return &Result{}
	}
	prof := profiler.Profile(models.Texts(lines))
	return p.parseProfiled(lines, prof)
}

func (p *Parser) parseProfiled(lines []models.RawLine, prof models.Profile) *Result {
	p.log.Debug("Walking statement lines",
		logging.Field{Key: logging.FieldCount, Value: len(lines)},
		logging.Field{Key: logging.FieldLayout, Value: string(prof.Layout)},
		logging.Field{Key: logging.FieldYear, Value: prof.DefaultYear},
		logging.Field{Key: logging.FieldDateOrder, Value: string(prof.DateOrder)})

	rows, unparsed := p.walk(lines, prof)
	rows = reconcile.Apply(rows, models.Texts(lines), prof, p.reconcile)

	if len(unparsed) > 0 {
		p.log.Warn("Some date-prefixed lines matched no grammar",
			logging.Field{Key: logging.FieldUnparsed, Value: len(unparsed)})
	}
	return &Result{
		Records:  rows,
		Unparsed: unparsed,
		RawLines: lines,
		Profile:  prof,
	}
}

// ParseDocument extracts lines from a document via the given backend and
// parses them. When the profiler detects a tabular layout, extraction is
// re-run in word-box mode and the year/date-order heuristics are recomputed
// over the reconstructed lines; the detected layout and credit-card flag are
// kept from the first pass.
func (p *Parser) ParseDocument(r io.Reader, backend extractor.Backend) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines, err := backend.Extract(bytes.NewReader(data), extractor.ModeText, p.extract)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &Result{}, nil
	}

	prof := profiler.Profile(models.Texts(lines))
	if prof.Layout.IsTable() {
		wordLines, wordErr := backend.Extract(bytes.NewReader(data), extractor.ModeWords, p.extract)
		if wordErr == nil && len(wordLines) > 0 {
			lines = wordLines
			texts := models.Texts(lines)
			prof.DefaultYear = profiler.InferYear(texts)
			prof.DateOrder = profiler.InferDateOrder(texts)
		} else if wordErr != nil {
			p.log.WithError(wordErr).Warn("Word-mode extraction failed, keeping text-mode lines")
		}
	}

	return p.parseProfiled(lines, prof), nil
}
