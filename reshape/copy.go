package reshape

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// copyBlocks writes the given blocks back to back into one contiguous
// array of the given type, copying values and validity element-wise.
// Every block must already have the target type; Melt's validation
// guarantees that. Nested types fall back to arrow's generic
// concatenation, which preserves the same value and null semantics.
func copyBlocks(mem memory.Allocator, dtype arrow.DataType, blocks []arrow.Array) (arrow.Array, error) {
	if len(blocks) > 0 && !flatCopyable(dtype) {
		return array.Concatenate(blocks, mem)
	}

	b := array.NewBuilder(mem, dtype)
	defer b.Release()
	total := 0
	for _, blk := range blocks {
		total += blk.Len()
	}
	b.Reserve(total)
	for _, blk := range blocks {
		if err := appendBlock(b, blk); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

// flatCopyable reports whether appendBlock handles the type.
func flatCopyable(dtype arrow.DataType) bool {
	switch dtype.ID() {
	case arrow.NULL, arrow.BOOL, arrow.STRING, arrow.BINARY,
		arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64,
		arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP, arrow.DECIMAL128:
		return true
	default:
		return false
	}
}

// appendBlock appends one source block to the builder, null positions
// included. The builder must have been created for the block's type.
func appendBlock(b array.Builder, src arrow.Array) error {
	switch s := src.(type) {
	case *array.Null:
		b.(*array.NullBuilder).AppendNulls(s.Len())

	case *array.Boolean:
		bb := b.(*array.BooleanBuilder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.String:
		bb := b.(*array.StringBuilder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Binary:
		bb := b.(*array.BinaryBuilder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Int8:
		bb := b.(*array.Int8Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Int16:
		bb := b.(*array.Int16Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Int32:
		bb := b.(*array.Int32Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Int64:
		bb := b.(*array.Int64Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Uint8:
		bb := b.(*array.Uint8Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Uint16:
		bb := b.(*array.Uint16Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Uint32:
		bb := b.(*array.Uint32Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Uint64:
		bb := b.(*array.Uint64Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Float16:
		bb := b.(*array.Float16Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Float32:
		bb := b.(*array.Float32Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Float64:
		bb := b.(*array.Float64Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Date32:
		bb := b.(*array.Date32Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Date64:
		bb := b.(*array.Date64Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Timestamp:
		bb := b.(*array.TimestampBuilder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	case *array.Decimal128:
		bb := b.(*array.Decimal128Builder)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				bb.AppendNull()
			} else {
				bb.Append(s.Value(i))
			}
		}

	default:
		return fmt.Errorf("cannot copy block of type %s", src.DataType())
	}
	return nil
}
