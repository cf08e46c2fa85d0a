package dataframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Column is a named, typed, nullable sequence backed by an Arrow array.
// The zero value is not usable; construct columns with NewColumn or the
// typed builders in this package.
type Column struct {
	name string
	data arrow.Array
}

// NewColumn wraps an Arrow array as a named column. The column shares the
// array's underlying buffers; the caller keeps its own reference and the
// column retains one of its own.
func NewColumn(name string, data arrow.Array) Column {
	data.Retain()
	return Column{name: name, data: data}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Len returns the number of rows in the column.
func (c Column) Len() int { return c.data.Len() }

// DataType returns the column's Arrow element type.
func (c Column) DataType() arrow.DataType { return c.data.DataType() }

// Kind returns the coarse classification of the column's element type.
func (c Column) Kind() Kind { return KindOf(c.data.DataType()) }

// IsNull reports whether the value at the given row is null.
func (c Column) IsNull(row int) bool { return c.data.IsNull(row) }

// NullCount returns the number of null values in the column.
func (c Column) NullCount() int { return c.data.NullN() }

// Array returns the underlying Arrow array. The column keeps ownership;
// callers that need to hold the array past the column's lifetime must
// Retain it themselves.
func (c Column) Array() arrow.Array { return c.data }

// Rename returns a column with the same data under a new name.
func (c Column) Rename(name string) Column {
	c.data.Retain()
	return Column{name: name, data: c.data}
}

// Value returns the cell at the given row.
// Returns ErrInvalidRow if row is out of range.
func (c Column) Value(row int) (Value, error) {
	if row < 0 || row >= c.data.Len() {
		return Value{}, fmt.Errorf("%w: %d (column %q has %d rows)", ErrInvalidRow, row, c.name, c.data.Len())
	}
	return cellValue(c.data, row), nil
}

// Retain increases the reference count of the backing array.
func (c Column) Retain() { c.data.Retain() }

// Release decreases the reference count of the backing array.
func (c Column) Release() { c.data.Release() }
