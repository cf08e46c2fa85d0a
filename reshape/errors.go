// Package reshape implements wide-to-long table reshaping over dataframe
// frames. The central operation is Melt, which unpivots a set of value
// columns into a single value column tagged by a dictionary-encoded
// variable column.
package reshape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Sentinel errors for the melt validation stages. The typed errors below
// wrap these, so callers can match broadly with errors.Is or inspect the
// details with errors.As.
var (
	// ErrMissingColumns is returned when requested columns are absent.
	ErrMissingColumns = errors.New("missing columns")

	// ErrOverlappingColumns is returned when a column is requested as
	// both identifier and value variable.
	ErrOverlappingColumns = errors.New("overlapping columns")

	// ErrUnsupportedType is returned for dictionary-encoded value columns.
	ErrUnsupportedType = errors.New("unsupported value column type")

	// ErrInconsistentTypes is returned when value columns differ in type.
	ErrInconsistentTypes = errors.New("inconsistent value column types")

	// ErrTooManyValueVars is returned when the number of value columns
	// exceeds the variable dictionary's index range.
	ErrTooManyValueVars = errors.New("too many value columns")
)

// VarKind distinguishes the two column selections of a melt call.
type VarKind string

const (
	// IdentifierVars denotes the id_vars selection.
	IdentifierVars VarKind = "id_vars"
	// ValueVars denotes the value_vars selection.
	ValueVars VarKind = "value_vars"
)

// MissingColumnsError reports columns requested as id_vars or value_vars
// that are not present in the source frame. Names holds every missing
// name, sorted.
type MissingColumnsError struct {
	Kind  VarKind
	Names []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("the following %s are not present in the frame: [%s]",
		e.Kind, strings.Join(e.Names, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// OverlapError reports columns requested both as id_vars and value_vars.
// Names holds every overlapping name, sorted.
type OverlapError struct {
	Names []string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("value_vars and id_vars cannot overlap; both contain: [%s]",
		strings.Join(e.Names, ", "))
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingColumns }

// UnsupportedTypeError reports a value column whose element type cannot be
// melted. Dictionary-encoded (categorical) value columns are not supported.
type UnsupportedTypeError struct {
	Column string
	Type   arrow.DataType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("value column %q has unsupported type %s", e.Column, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// InconsistentTypesError reports a value column whose element type differs
// from the first value column's.
type InconsistentTypesError struct {
	Column string
	Want   arrow.DataType
	Got    arrow.DataType
}

func (e *InconsistentTypesError) Error() string {
	return fmt.Sprintf("all value columns must share one type: column %q is %s, want %s",
		e.Column, e.Got, e.Want)
}

func (e *InconsistentTypesError) Unwrap() error { return ErrInconsistentTypes }
