package sqlerr

import "fmt"

// Code is a driver-independent category for a PostgreSQL error.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	InvalidTextRepresentation
	UndefinedTable
	UndefinedColumn
	ConnectionException
	TooManyConnections
	QueryCanceled
	SerializationFailure
)

var codeNames = map[Code]string{
	Other:                     "other",
	NotNullViolation:          "not_null_violation",
	ForeignKeyViolation:       "foreign_key_violation",
	UniqueViolation:           "unique_violation",
	CheckViolation:            "check_violation",
	InvalidTextRepresentation: "invalid_text_representation",
	UndefinedTable:            "undefined_table",
	UndefinedColumn:           "undefined_column",
	ConnectionException:       "connection_exception",
	TooManyConnections:        "too_many_connections",
	QueryCanceled:             "query_canceled",
	SerializationFailure:      "serialization_failure",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[Other]
}

// MapCode maps a SQLSTATE to a Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "53300":
		return TooManyConnections
	case "57014":
		return QueryCanceled
	case "40001":
		return SerializationFailure
	}

	// Class 08 covers every connection exception.
	if len(sqlstate) == 5 && sqlstate[:2] == "08" {
		return ConnectionException
	}
	return Other
}

// Severity is the server-reported severity of an error.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

var severityNames = map[Severity]string{
	SeverityError:   "ERROR",
	SeverityFatal:   "FATAL",
	SeverityPanic:   "PANIC",
	SeverityWarning: "WARNING",
	SeverityNotice:  "NOTICE",
	SeverityDebug:   "DEBUG",
	SeverityInfo:    "INFO",
	SeverityLog:     "LOG",
}

func (s Severity) String() string {
	return severityNames[s]
}

// MapSeverity maps the severity string sent by the server. Unknown values
// are treated as ERROR.
func MapSeverity(severity string) Severity {
	for s, name := range severityNames {
		if name == severity {
			return s
		}
	}
	return SeverityError
}

// Error is a normalized PostgreSQL error, built from either pgconn.PgError
// or pq.Error.
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

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
