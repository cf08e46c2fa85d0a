package dataframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// cellValue extracts the cell at pos from an Arrow array as a typed Value.
// Dictionary-encoded columns report the decoded label, not the index.
func cellValue(col arrow.Array, pos int) Value {
	if col.IsNull(pos) {
		return Value{IsNull: true}
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		v := col.(*array.String).Value(pos)
		return Value{Raw: v, Formatted: v}

	case arrow.BINARY:
		v := col.(*array.Binary).Value(pos)
		return Value{Raw: v, Formatted: string(v)}

	case arrow.BOOL:
		v := col.(*array.Boolean).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%v", v)}

	case arrow.INT8:
		v := col.(*array.Int8).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.INT16:
		v := col.(*array.Int16).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.INT32:
		v := col.(*array.Int32).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.INT64:
		v := col.(*array.Int64).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.UINT8:
		v := col.(*array.Uint8).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.UINT16:
		v := col.(*array.Uint16).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.UINT32:
		v := col.(*array.Uint32).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.UINT64:
		v := col.(*array.Uint64).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%d", v)}

	case arrow.FLOAT16:
		v := col.(*array.Float16).Value(pos)
		return Value{Raw: v.Float32(), Formatted: v.String()}

	case arrow.FLOAT32:
		v := col.(*array.Float32).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%g", v)}

	case arrow.FLOAT64:
		v := col.(*array.Float64).Value(pos)
		return Value{Raw: v, Formatted: fmt.Sprintf("%g", v)}

	case arrow.DATE32:
		t := col.(*array.Date32).Value(pos).ToTime()
		return Value{Raw: t, Formatted: t.Format("2006-01-02")}

	case arrow.DATE64:
		t := col.(*array.Date64).Value(pos).ToTime()
		return Value{Raw: t, Formatted: t.Format("2006-01-02")}

	case arrow.TIMESTAMP:
		unit := arrow.Nanosecond
		if ts, ok := col.DataType().(*arrow.TimestampType); ok {
			unit = ts.Unit
		}
		t := col.(*array.Timestamp).Value(pos).ToTime(unit)
		return Value{Raw: t, Formatted: t.Format("2006-01-02 15:04:05.999999999")}

	case arrow.DECIMAL128:
		v := col.(*array.Decimal128).Value(pos).BigInt().String()
		return Value{Raw: v, Formatted: v}

	case arrow.DICTIONARY:
		d := col.(*array.Dictionary)
		return cellValue(d.Dictionary(), d.GetValueIndex(pos))

	case arrow.STRUCT:
		b, _ := col.(*array.Struct).MarshalJSON()
		return Value{Raw: string(b), Formatted: string(b)}

	case arrow.LIST:
		s := array.NewSlice(col, int64(pos), int64(pos+1))
		defer s.Release()
		v := fmt.Sprintf("%v", s)
		return Value{Raw: v, Formatted: v}

	default:
		v := fmt.Sprintf("%v", col)
		return Value{Raw: v, Formatted: v}
	}
}
