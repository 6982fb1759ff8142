// Package ledger provides the public API for turning bank and credit-card
// statement text into a normalized transaction ledger.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/common"
	"ledgerlens/internal/extractor"
	"ledgerlens/internal/hints"
	"ledgerlens/internal/logging"
	"ledgerlens/internal/models"
	"ledgerlens/internal/reconcile"
	"ledgerlens/internal/statement"
)

// Result is the outcome of parsing one statement.
type Result = statement.Result

// Options configures a parse run.
type Options struct {
	// Logger overrides the default logger when set.
	Logger logging.Logger

	// HintsFile points to a YAML file overriding the built-in description
	// hint lists. Empty means built-ins.
	HintsFile string

	// Extract configures text extraction.
	Extract extractor.Options

	// Reconcile configures the reconciliation pass.
	Reconcile reconcile.Options
}

// DefaultOptions returns the standard parse configuration.
func DefaultOptions() Options {
	return Options{
		Extract:   extractor.DefaultOptions(),
		Reconcile: reconcile.DefaultOptions(),
	}
}

func newParser(opts Options) (*statement.Parser, error) {
	p := statement.New()
	if opts.Logger != nil {
		p.SetLogger(opts.Logger)
	}
	if opts.HintsFile != "" {
		h, err := hints.Load(opts.HintsFile)
		if err != nil {
			return nil, fmt.Errorf("error loading hints file: %w", err)
		}
		p.SetHints(h)
	}
	p.SetExtractOptions(opts.Extract)
	p.SetReconcileOptions(opts.Reconcile)
	return p, nil
}

// ParseFile parses a statement file into a ledger. PDF files go through the
// PDF text extractor; anything else is treated as plain text with form-feed
// page breaks.
func ParseFile(path string, opts Options) (*Result, error) {
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 -- caller-provided statement path
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var backend extractor.Backend
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		backend = extractor.NewPDFBackend()
	} else {
		backend = extractor.TextBackend{}
	}
	return p.ParseDocument(file, backend)
}

// ParseLines parses already-extracted statement lines into a ledger.
func ParseLines(lines []models.RawLine, opts Options) (*Result, error) {
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines), nil
}

// CheckBalances reports rows whose stated balance disagrees with the prior
// balance plus the row's amount by more than tolerance.
func CheckBalances(records []models.Record, tolerance decimal.Decimal) []models.Mismatch {
	return reconcile.ComputeBalanceMismatches(records, tolerance)
}

// ConvertToCSV parses a statement file and writes the resulting ledger as
// CSV.
func ConvertToCSV(inputFile, outputFile string, opts Options) (*Result, error) {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputFile)
	}

	result, err := ParseFile(inputFile, opts)
	if err != nil {
		return nil, fmt.Errorf("error parsing statement: %w", err)
	}

	// A statement with no recognizable transactions still yields a
	// header-only ledger, not a failure.
	records := result.Records
	if records == nil {
		records = []models.Record{}
	}
	if err := common.WriteRecordsToCSV(records, outputFile); err != nil {
		return nil, fmt.Errorf("error writing ledger CSV: %w", err)
	}
	return result, nil
}

// BatchConvert converts all statement files in a directory to CSV files.
// Supported inputs are .pdf and .txt files; anything else is skipped.
func BatchConvert(inputDir, outputDir string, opts Options) (int, error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	files, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("error reading input directory: %w", err)
	}

	count := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".pdf" && ext != ".txt" {
			continue
		}

		inputPath := filepath.Join(inputDir, file.Name())
		outputPath := filepath.Join(outputDir, strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))+".csv")

		if _, err := ConvertToCSV(inputPath, outputPath, opts); err != nil {
			return count, fmt.Errorf("error converting %s: %w", file.Name(), err)
		}
		count++
	}

	return count, nil
}
