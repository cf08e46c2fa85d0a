// Package dataframe provides an in-memory, column-oriented table built on
// Apache Arrow arrays. A Frame is an ordered collection of named, typed,
// nullable columns with a uniform row count.
package dataframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind is a coarse classification of a column's element type.
type Kind int

const (
	// KindUnknown represents a type this package has no classification for.
	KindUnknown Kind = iota
	// KindString represents UTF-8 string data.
	KindString
	// KindInt represents signed integer data (any width).
	KindInt
	// KindUint represents unsigned integer data (any width).
	KindUint
	// KindFloat represents floating-point data (any precision).
	KindFloat
	// KindBool represents boolean data.
	KindBool
	// KindDate represents date data (without time of day).
	KindDate
	// KindTimestamp represents timestamp data (date + time).
	KindTimestamp
	// KindBinary represents raw binary data.
	KindBinary
	// KindDecimal represents fixed-precision decimal data.
	KindDecimal
	// KindDictionary represents dictionary-encoded (categorical) data.
	KindDictionary
	// KindList represents list/array data.
	KindList
	// KindStruct represents nested structured data.
	KindStruct
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindDate:
		return "Date"
	case KindTimestamp:
		return "Timestamp"
	case KindBinary:
		return "Binary"
	case KindDecimal:
		return "Decimal"
	case KindDictionary:
		return "Dictionary"
	case KindList:
		return "List"
	case KindStruct:
		return "Struct"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// KindOf classifies an Arrow data type.
func KindOf(dt arrow.DataType) Kind {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return KindString
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return KindInt
	case arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return KindUint
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return KindFloat
	case arrow.BOOL:
		return KindBool
	case arrow.DATE32, arrow.DATE64:
		return KindDate
	case arrow.TIMESTAMP:
		return KindTimestamp
	case arrow.BINARY, arrow.LARGE_BINARY:
		return KindBinary
	case arrow.DECIMAL128:
		return KindDecimal
	case arrow.DICTIONARY:
		return KindDictionary
	case arrow.LIST, arrow.LARGE_LIST:
		return KindList
	case arrow.STRUCT:
		return KindStruct
	default:
		return KindUnknown
	}
}

// Value is a typed container for a single cell.
// It holds the extracted Go value, null status, and a pre-formatted string.
type Value struct {
	// Raw holds the underlying value. The concrete type depends on the
	// column's Arrow type; it is nil when IsNull is true.
	Raw interface{}

	// IsNull indicates whether this cell is null.
	IsNull bool

	// Formatted is a string representation suitable for display and CSV
	// output. Empty for null cells.
	Formatted string
}

// Metadata holds optional metadata about a frame, such as its origin.
type Metadata map[string]string
