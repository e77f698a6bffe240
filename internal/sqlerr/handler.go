package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/assignment-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classify returns err as an *Error when its chain holds a PostgreSQL error
// from either driver, and nil otherwise.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return ConvertPqError(pqerr)
	}
	return nil
}

// ConvertPgError converts a pgx server error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertPqError converts a lib/pq server error.
func ConvertPqError(src *pq.Error) *Error {
	return &Error{
		Code:           MapCode(string(src.Code)),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   string(src.Code),
		Message:        src.Message,
		SchemaName:     src.Schema,
		TableName:      src.Table,
		ColumnName:     src.Column,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.Constraint,
		driverErr:      src,
	}
}

// MarshalZerologObject writes the classification as log fields.
func (e *Error) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("code", e.Code.String()).
		Str("sqlstate", e.DatabaseCode).
		Str("severity", e.Severity.String()).
		Str("error_code", generateErrorCode(e.TableName, e.Code))

	if e.TableName != "" {
		ev.Str("table", e.TableName)
	}
	if column := e.column(); column != "" {
		ev.Str("column", column)
	}
	if e.ConstraintName != "" {
		ev.Str("constraint", e.ConstraintName)
	}
}

// LogFields attaches the classification of err under the "sql" key when err
// is a database error.
func LogFields(ev *zerolog.Event, err error) *zerolog.Event {
	if sqlErr := Classify(err); sqlErr != nil {
		return ev.Object("sql", sqlErr)
	}
	return ev
}

func (e *Error) column() string {
	if e.ColumnName != "" {
		return e.ColumnName
	}
	if e.Code == UniqueViolation {
		return extractColumnForUniqueViolation(e.ConstraintName)
	}
	return ""
}

// generateErrorCode builds a <DOMAIN>_<ACTION> code such as
// ASSIGNMENT_REQUIRED from the table name and error category.
func generateErrorCode(tableName string, errType Code) string {
	domain := strings.ToUpper(strings.ReplaceAll(getEntityName(tableName, ""), " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// getEntityName prefers a foreign key column ("user_id" -> "User"), then
// the singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation understands "unique_<table>_<column>" and
// "<table>_<column>_key" constraint names.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts an error that escaped the service layer into an
// *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - "no rows" from either driver becomes 404.
//   - Everything else, classified or not, becomes a generic 500 that wraps
//     err for logging.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
