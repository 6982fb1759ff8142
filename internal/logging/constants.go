package logging

// Standardized field names for structured logging. Keeping these in one place
// makes log output consistent and easy to filter.
const (
	FieldFile       = "file_path"
	FieldPage       = "page"
	FieldLine       = "line"
	FieldLayout     = "layout"
	FieldAccount    = "account_number"
	FieldYear       = "default_year"
	FieldDateOrder  = "date_order"
	FieldCount      = "count"
	FieldUnparsed   = "unparsed"
	FieldTolerance  = "tolerance"
	FieldMode       = "mode"
	FieldError      = "error"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
