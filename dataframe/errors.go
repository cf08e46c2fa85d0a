package dataframe

import "errors"

// Common errors returned by the dataframe package.
var (
	// ErrColumnNotFound is returned when a column name is not present.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned when column lengths differ.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrNoData is returned when a frame or column is required but empty.
	ErrNoData = errors.New("no data")
)
