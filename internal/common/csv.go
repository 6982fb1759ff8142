// Package common provides shared CSV input/output used by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"ledgerlens/internal/logging"
	"ledgerlens/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the CSV output delimiter. Configurable via the central
// config or the CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// RecordRow is the CSV projection of one ledger record. Dates are ISO
// formatted; absent numeric columns stay empty rather than rendering zero.
type RecordRow struct {
	Date          string `csv:"date"`
	DateRaw       string `csv:"date_raw"`
	PostDate      string `csv:"post_date"`
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	Debit         string `csv:"debit"`
	Credit        string `csv:"credit"`
	Balance       string `csv:"balance"`
	AccountName   string `csv:"account_name"`
	AccountNumber string `csv:"account_number"`
	AccountType   string `csv:"account_type"`
	LineType      string `csv:"line_type"`
	Page          int    `csv:"page"`
}

// NewRecordRow converts a ledger record to its CSV projection.
func NewRecordRow(rec models.Record) RecordRow {
	row := RecordRow{
		DateRaw:       rec.DateRaw,
		Description:   rec.Description,
		Amount:        decString(rec.Amount),
		Debit:         decString(rec.Debit),
		Credit:        decString(rec.Credit),
		Balance:       decString(rec.Balance),
		AccountName:   rec.AccountName,
		AccountNumber: rec.AccountNumber,
		AccountType:   string(rec.AccountType),
		LineType:      string(rec.LineType),
		Page:          rec.Page,
	}
	if !rec.Date.IsZero() {
		row.Date = rec.Date.Format("2006-01-02")
	}
	if !rec.PostDate.IsZero() {
		row.PostDate = rec.PostDate.Format("2006-01-02")
	}
	return row
}

func decString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteRecordsToCSV writes ledger records to a CSV file in the standard
// column layout. All commands use this function so output stays consistent.
func WriteRecordsToCSV(records []models.Record, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Info("Writing records to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]RecordRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NewRecordRow(rec))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Info("Successfully wrote records to CSV file")

	return nil
}
