package dataframe

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Frame is an ordered mapping from column name to column with a uniform
// row count. Frames are immutable once constructed; operations that appear
// to modify a frame return a new one.
//
// Frames hold references to Arrow buffers and must be released:
//
//	f, err := dataframe.New(mem, cols...)
//	defer f.Release()
type Frame struct {
	mem    memory.Allocator
	cols   []Column
	byName map[string]int
	rows   int
	meta   Metadata
}

// New creates a frame from the given columns. Column names must be unique
// and all columns must have the same length. The frame retains the columns;
// the caller remains responsible for releasing the ones it created.
func New(mem memory.Allocator, cols ...Column) (*Frame, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	f := &Frame{
		mem:    mem,
		cols:   make([]Column, 0, len(cols)),
		byName: make(map[string]int, len(cols)),
		meta:   Metadata{},
	}
	for i, c := range cols {
		if _, dup := f.byName[c.Name()]; dup {
			f.Release()
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name())
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			f.Release()
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, c.Name(), c.Len(), f.rows)
		}
		c.Retain()
		f.byName[c.Name()] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// FromRecord creates a frame from an Arrow record batch. The frame retains
// the record's arrays; the record itself stays owned by the caller.
func FromRecord(mem memory.Allocator, rec arrow.Record) (*Frame, error) {
	cols := make([]Column, rec.NumCols())
	for i := 0; i < int(rec.NumCols()); i++ {
		cols[i] = Column{name: rec.Schema().Field(i).Name, data: rec.Column(i)}
	}
	return New(mem, cols...)
}

// FromTable creates a frame from an Arrow table, concatenating chunked
// columns into contiguous arrays.
func FromTable(mem memory.Allocator, tbl arrow.Table) (*Frame, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	cols := make([]Column, 0, int(tbl.NumCols()))
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	for i := 0; i < int(tbl.NumCols()); i++ {
		name := tbl.Schema().Field(i).Name
		chunks := tbl.Column(i).Data().Chunks()
		switch len(chunks) {
		case 0:
			b := array.NewBuilder(mem, tbl.Schema().Field(i).Type)
			arr := b.NewArray()
			b.Release()
			cols = append(cols, Column{name: name, data: arr})
		case 1:
			cols = append(cols, NewColumn(name, chunks[0]))
		default:
			merged, err := array.Concatenate(chunks, mem)
			if err != nil {
				return nil, fmt.Errorf("failed to merge chunks of column %q: %w", name, err)
			}
			cols = append(cols, Column{name: name, data: merged})
		}
	}
	return New(mem, cols...)
}

// Allocator returns the allocator the frame was built with.
func (f *Frame) Allocator() memory.Allocator { return f.mem }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// ColumnNames returns the column names in frame order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[i], true
}

// ColumnAt returns the column at the given index.
// Returns ErrInvalidColumn if idx is out of range.
func (f *Frame) ColumnAt(idx int) (Column, error) {
	if idx < 0 || idx >= len(f.cols) {
		return Column{}, fmt.Errorf("%w: %d (frame has %d columns)", ErrInvalidColumn, idx, len(f.cols))
	}
	return f.cols[idx], nil
}

// Cell returns the value at the given row and column index.
func (f *Frame) Cell(row, col int) (Value, error) {
	c, err := f.ColumnAt(col)
	if err != nil {
		return Value{}, err
	}
	return c.Value(row)
}

// Row returns all values of the given row in column order.
// Returns ErrInvalidRow if row is out of range.
func (f *Frame) Row(row int) ([]Value, error) {
	if row < 0 || row >= f.rows {
		return nil, fmt.Errorf("%w: %d (frame has %d rows)", ErrInvalidRow, row, f.rows)
	}
	vals := make([]Value, len(f.cols))
	for i, c := range f.cols {
		vals[i] = cellValue(c.data, row)
	}
	return vals, nil
}

// Select returns a new frame with only the named columns, in the given order.
// Returns ErrColumnNotFound if any name is absent.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		cols = append(cols, c)
	}
	return New(f.mem, cols...)
}

// Schema returns an Arrow schema describing the frame's columns.
func (f *Frame) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(f.cols))
	for i, c := range f.cols {
		fields[i] = arrow.Field{Name: c.Name(), Type: c.DataType(), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// Record materializes the frame as an Arrow record batch. The record holds
// its own references and must be released by the caller.
func (f *Frame) Record() arrow.Record {
	arrs := make([]arrow.Array, len(f.cols))
	for i, c := range f.cols {
		arrs[i] = c.data
	}
	return array.NewRecord(f.Schema(), arrs, int64(f.rows))
}

// Table materializes the frame as an Arrow table. The table must be
// released by the caller.
func (f *Frame) Table() arrow.Table {
	rec := f.Record()
	defer rec.Release()
	return array.NewTableFromRecords(f.Schema(), []arrow.Record{rec})
}

// Metadata returns the frame's metadata map.
func (f *Frame) Metadata() Metadata { return f.meta }

// SetMetadata records a metadata key, such as the frame's source path.
func (f *Frame) SetMetadata(key, value string) { f.meta[key] = value }

// String returns a compact schema summary, e.g.
// "Frame[4 rows] A:Int64, variable:Dictionary, value:Int64".
func (f *Frame) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Frame[%d rows]", f.rows)
	for i, c := range f.cols {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%s", c.Name(), c.DataType())
	}
	return sb.String()
}

// Release frees the frame's references to its column buffers.
func (f *Frame) Release() {
	for _, c := range f.cols {
		c.Release()
	}
	f.cols = nil
	f.byName = nil
}
