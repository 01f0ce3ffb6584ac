package logging

// Standardized field names for structured logging.
const (
	FieldRunID      = "run_id"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldReportFile = "report_file"
	FieldRow        = "row"
	FieldRole       = "role"
	FieldParty      = "party"
	FieldRule       = "rule"
	FieldCategory   = "category"
	FieldStatus     = "status"
	FieldBankCode   = "bank_code"
	FieldSTT        = "stt"
	FieldKeyword    = "keyword"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldStore      = "store"
	FieldTable      = "table"
)
