// Package protoerr defines the structured error type the engine fails
// waiters with, grounded on pgconn's PgError.
package protoerr

import (
	"strconv"

	"github.com/jec/moses-pg/wire"
)

// A sampling of SQLSTATE codes frequently tested against by name rather
// than by raw string, grounded on pgconn/errors.go's exhaustive table.
// This is a trimmed subset of that table; callers needing the rest can compare PgError.Code directly against the
// five-character SQLSTATE string.
const (
	SuccessfulCompletionCode   = "00000"
	UniqueViolationCode        = "23505"
	ForeignKeyViolationCode    = "23503"
	NotNullViolationCode       = "23502"
	CheckViolationCode         = "23514"
	SyntaxErrorCode            = "42601"
	UndefinedTableCode         = "42P01"
	UndefinedColumnCode        = "42703"
	InvalidTextRepresentation  = "22P02"
	SerializationFailureCode   = "40001"
	DeadlockDetectedCode       = "40P01"
	ConnectionFailureCode      = "08006"
	AdminShutdownCode          = "57P01"
	QueryCanceledCode          = "57014"
)

// PgError is the client-facing projection of an ErrorResponse/NoticeResponse
// field map. It implements error and SQLState() string.
type PgError struct {
	Severity         string
	Code             string
	Message          string
	Detail           string
	Hint             string
	Position         int32
	InternalPosition int32
	InternalQuery    string
	Where            string
	SchemaName       string
	TableName        string
	ColumnName       string
	DataTypeName     string
	ConstraintName   string
	File             string
	Line             int32
	Routine          string
}

func (pe *PgError) Error() string {
	return pe.Severity + ": " + pe.Message + " (SQLSTATE " + pe.Code + ")"
}

// SQLState returns the SQLState code of the error.
func (pe *PgError) SQLState() string {
	return pe.Code
}

// FromFields builds a PgError from the raw tag->value map decoded off an
// ErrorResponse. Unknown tags (preserved by the wire decoder) are simply
// ignored here; no information is lost, since callers who need them can
// still go back to the raw wire.ErrorResponse.
func FromFields(fields map[byte]string) *PgError {
	pe := &PgError{
		Severity:      fields[wire.FieldSeverity],
		Code:          fields[wire.FieldCode],
		Message:       fields[wire.FieldMessage],
		Detail:        fields[wire.FieldDetail],
		Hint:          fields[wire.FieldHint],
		InternalQuery: fields[wire.FieldInternalQuery],
		Where:         fields[wire.FieldWhere],
		SchemaName:    fields[wire.FieldSchemaName],
		TableName:     fields[wire.FieldTableName],
		ColumnName:    fields[wire.FieldColumnName],
		DataTypeName:  fields[wire.FieldDataTypeName],
		ConstraintName: fields[wire.FieldConstraintName],
		File:          fields[wire.FieldFile],
		Routine:       fields[wire.FieldRoutine],
	}
	if v, ok := fields[wire.FieldPosition]; ok {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			pe.Position = int32(n)
		}
	}
	if v, ok := fields[wire.FieldInternalPosition]; ok {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			pe.InternalPosition = int32(n)
		}
	}
	if v, ok := fields[wire.FieldLine]; ok {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			pe.Line = int32(n)
		}
	}
	return pe
}

// NoticeFields projects the same field map into the plain
// map[string]string shape the data model's Result.Notices entries use
// (spec.md §3's "notices: list<map<string,string>>").
func NoticeFields(fields map[byte]string) map[string]string {
	out := make(map[string]string, len(fields))
	for tag, value := range fields {
		out[fieldName(tag)] = value
	}
	return out
}

func fieldName(tag byte) string {
	switch tag {
	case wire.FieldSeverity:
		return "Severity"
	case wire.FieldCode:
		return "Code"
	case wire.FieldMessage:
		return "Message"
	case wire.FieldDetail:
		return "Detail"
	case wire.FieldHint:
		return "Hint"
	case wire.FieldPosition:
		return "Position"
	case wire.FieldInternalPosition:
		return "InternalPosition"
	case wire.FieldInternalQuery:
		return "InternalQuery"
	case wire.FieldWhere:
		return "Where"
	case wire.FieldSchemaName:
		return "SchemaName"
	case wire.FieldTableName:
		return "TableName"
	case wire.FieldColumnName:
		return "ColumnName"
	case wire.FieldDataTypeName:
		return "DataTypeName"
	case wire.FieldConstraintName:
		return "ConstraintName"
	case wire.FieldFile:
		return "File"
	case wire.FieldLine:
		return "Line"
	case wire.FieldRoutine:
		return "Routine"
	default:
		return string(tag)
	}
}
