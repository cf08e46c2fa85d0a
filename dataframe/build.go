package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Typed column constructors. A nil valid slice marks every row valid;
// otherwise valid[i] == false makes row i null.

// NewInt64Column builds an int64 column from a slice of values.
func NewInt64Column(mem memory.Allocator, name string, values []int64, valid []bool) Column {
	b := array.NewInt64Builder(alloc(mem))
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	return NewColumn(name, arr)
}

// NewInt32Column builds an int32 column from a slice of values.
func NewInt32Column(mem memory.Allocator, name string, values []int32, valid []bool) Column {
	b := array.NewInt32Builder(alloc(mem))
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	return NewColumn(name, arr)
}

// NewFloat64Column builds a float64 column from a slice of values.
func NewFloat64Column(mem memory.Allocator, name string, values []float64, valid []bool) Column {
	b := array.NewFloat64Builder(alloc(mem))
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	return NewColumn(name, arr)
}

// NewStringColumn builds a string column from a slice of values.
func NewStringColumn(mem memory.Allocator, name string, values []string, valid []bool) Column {
	b := array.NewStringBuilder(alloc(mem))
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	return NewColumn(name, arr)
}

// NewBoolColumn builds a boolean column from a slice of values.
func NewBoolColumn(mem memory.Allocator, name string, values []bool, valid []bool) Column {
	b := array.NewBooleanBuilder(alloc(mem))
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	return NewColumn(name, arr)
}

func alloc(mem memory.Allocator) memory.Allocator {
	if mem == nil {
		return memory.DefaultAllocator
	}
	return mem
}
