package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"ledgerlens/internal/logging"
	"ledgerlens/internal/models"
	"ledgerlens/internal/parsererror"
)

// PDFBackend extracts statement lines from PDF documents. Text mode walks
// the library's row grouping; word mode reads positioned text objects so
// columnar statements can be reclustered by coordinate.
type PDFBackend struct {
	log logging.Logger
}

// NewPDFBackend returns a PDF backend logging through the default logger.
func NewPDFBackend() *PDFBackend {
	return &PDFBackend{log: logging.GetLogger()}
}

// SetLogger replaces the backend's logger. Nil is ignored.
func (b *PDFBackend) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.log = logger
	}
}

// Extract reads the whole document and produces the normalized line
// sequence. A document that cannot be opened or decoded at all yields an
// ExtractionError, the pipeline's only hard failure.
func (b *PDFBackend) Extract(r io.Reader, mode Mode, opts Options) ([]models.RawLine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "pdf", Err: err}
	}
	reader, err := openPDF(data)
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "pdf", Err: err}
	}

	b.log.Debug("Extracting PDF lines",
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
		logging.Field{Key: logging.FieldCount, Value: reader.NumPage()})

	if mode == ModeWords {
		words, err := collectWords(reader)
		if err != nil {
			return nil, err
		}
		return FromWords(words, opts), nil
	}
	pages, err := collectPages(reader)
	if err != nil {
		return nil, err
	}
	return FromPages(pages, opts), nil
}

// openPDF isolates the library open call; the underlying parser panics on
// some malformed documents.
func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library failure: %v", r)
		}
	}()
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if reader.NumPage() == 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:         "pdf",
			ExpectedFormat: "PDF with at least one page",
			Msg:            "document has no pages",
		}
	}
	return reader, nil
}

func collectPages(reader *pdf.Reader) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.ExtractionError{Source: "pdf", Err: fmt.Errorf("text extraction failure: %v", r)}
		}
	}()
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			pages = append(pages, "")
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}

func collectWords(reader *pdf.Reader) (words []Word, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.ExtractionError{Source: "pdf", Err: fmt.Errorf("word extraction failure: %v", r)}
		}
	}()
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			// PDF y grows upward; negating it gives a top coordinate that
			// grows in reading order.
			words = append(words, Word{
				Page: i,
				Text: t.S,
				Left: t.X,
				Top:  -t.Y,
			})
		}
	}
	return words, nil
}

// TextBackend reads a plain-text document (one page, or pages separated by
// form feeds). Word mode is not available for plain text. Useful for tests
// and pre-extracted statement dumps.
type TextBackend struct{}

// Extract implements Backend.
func (TextBackend) Extract(r io.Reader, mode Mode, opts Options) ([]models.RawLine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "text", Err: err}
	}
	pages := strings.Split(string(data), "\f")
	return FromPages(pages, opts), nil
}
