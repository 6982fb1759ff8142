// Package parsererror defines the typed errors surfaced by the statement
// parsing pipeline. Only extraction-level failures are hard errors; line and
// token level failures degrade into unparsed-line diagnostics instead.
package parsererror

import "fmt"

// ExtractionError reports that a document could not be opened or read at all.
// This is the only condition that propagates as a hard failure out of the
// core, since without lines there is nothing to parse.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvalidFormatError reports that a document opened but its content does not
// look like a bank statement (content sniffing failed).
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in %s: %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}

// ParseError carries field-level context for a parsing failure inside a
// component. Used for diagnostics, not for per-line soft failures.
type ParseError struct {
	Component string
	Field     string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Component, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
