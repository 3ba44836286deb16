// Package sqlerr translates database driver errors into application errors.
//
// It parses SQLSTATE codes from pgx/pgconn and converts them into the errs
// package's HTTPError shapes with user-friendly messages (e.g. a unique
// violation on users.email becomes a 400 "A user with this Email already
// exists").
package sqlerr

import "errors"

// Code classifies a database error into the categories the API cares about.
type Code int

const (
	// Other covers everything not explicitly mapped.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// MapCode maps a Postgres SQLSTATE onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is the normalized database error. It retains the raw driver error
// for unwrapping alongside the Postgres metadata used to build messages.
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

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying driver error to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// ErrCode reports the mapped Code for err, or Other when err is not a
// normalized database error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}
