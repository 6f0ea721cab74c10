package sqlerr

import "fmt"

// Code is a driver-independent error category.
type Code string

const (
	Other                     Code = "other"
	UniqueViolation           Code = "unique_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	NotNullViolation          Code = "not_null_violation"
	CheckViolation            Code = "check_violation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
	InsufficientPrivilege     Code = "insufficient_privilege"
	QueryCanceled             Code = "query_canceled"
	ConnectionException       Code = "connection_exception"
	Busy                      Code = "busy"
)

// Severity mirrors the Postgres severity levels we care about.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityUnknown Severity = "UNKNOWN"
)

// Error is a classified driver error.
//
// DatabaseCode keeps the driver's own code (SQLSTATE or SQLite result
// code) for logs; Code is what callers switch on.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// pgCodes maps SQLSTATE codes to categories. Class 08 is handled by prefix.
var pgCodes = map[string]Code{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22P02": InvalidTextRepresentation,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"42501": InsufficientPrivilege,
	"57014": QueryCanceled,
}

// MapCode maps a Postgres SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionException
	}
	return Other
}

// MapSeverity maps a Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice:
		return Severity(severity)
	default:
		return SeverityUnknown
	}
}
