package reshape

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/sync/errgroup"

	"longform/dataframe"
)

// Default output column names for the variable and value columns.
const (
	DefaultVarName   = "variable"
	DefaultValueName = "value"
)

// maxValueVars is the number of distinct value columns the int8-coded
// variable dictionary can address.
const maxValueVars = 128

// Options configures a Melt call.
type Options struct {
	// IDVars are the identifier columns, preserved per input row and
	// replicated once per value column. Empty means no identifiers.
	IDVars []string

	// ValueVars are the columns to unpivot. A nil slice selects every
	// frame column not named in IDVars, in frame order. A non-nil empty
	// slice selects nothing and yields a zero-row result.
	ValueVars []string

	// VarName is the name of the output column holding the originating
	// column name per row. Defaults to "variable".
	VarName string

	// ValueName is the name of the output column holding the stacked
	// values. Defaults to "value".
	ValueName string
}

// Melt unpivots a frame from wide to long format.
//
// For a frame of N rows and K selected value columns the result has N×K
// rows in block layout: rows [j·N, (j+1)·N) hold the j-th value column's
// data. Identifier columns are replicated verbatim per block, the variable
// column is dictionary-encoded with the value column names as its ordered
// category set, and the value column carries the stacked data with null
// positions preserved. Column order is [id vars…, var name, value name].
//
// All validation happens before any output allocation; on error no partial
// frame is produced. The input frame is never modified.
func Melt(f *dataframe.Frame, opts Options) (*dataframe.Frame, error) {
	idVars, valueVars, err := resolveVars(f, opts.IDVars, opts.ValueVars)
	if err != nil {
		return nil, err
	}
	valueType, err := commonType(f, valueVars)
	if err != nil {
		return nil, err
	}
	if len(valueVars) > maxValueVars {
		return nil, fmt.Errorf("%w: %d (int8 variable codes address at most %d)",
			ErrTooManyValueVars, len(valueVars), maxValueVars)
	}

	varName := opts.VarName
	if varName == "" {
		varName = DefaultVarName
	}
	valueName := opts.ValueName
	if valueName == "" {
		valueName = DefaultValueName
	}

	mem := f.Allocator()
	n := f.NumRows()
	k := len(valueVars)

	// Each output column writes to its own slot, so the expansion runs
	// one goroutine per column with no shared state.
	idArrs := make([]arrow.Array, len(idVars))
	var varArr, valArr arrow.Array
	var g errgroup.Group

	for i, name := range idVars {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", dataframe.ErrColumnNotFound, name)
		}
		src := col.Array()
		g.Go(func() error {
			blocks := make([]arrow.Array, k)
			for j := range blocks {
				blocks[j] = src
			}
			arr, err := copyBlocks(mem, src.DataType(), blocks)
			if err != nil {
				return fmt.Errorf("failed to replicate identifier column %q: %w", name, err)
			}
			idArrs[i] = arr
			return nil
		})
	}

	g.Go(func() error {
		varArr = variableArray(mem, valueVars, n)
		return nil
	})

	g.Go(func() error {
		blocks := make([]arrow.Array, 0, k)
		for _, name := range valueVars {
			col, _ := f.Column(name)
			blocks = append(blocks, col.Array())
		}
		arr, err := copyBlocks(mem, valueType, blocks)
		if err != nil {
			return fmt.Errorf("failed to stack value columns: %w", err)
		}
		valArr = arr
		return nil
	})

	if err := g.Wait(); err != nil {
		releaseAll(idArrs, varArr, valArr)
		return nil, err
	}

	cols := make([]dataframe.Column, 0, len(idVars)+2)
	for i, name := range idVars {
		cols = append(cols, dataframe.NewColumn(name, idArrs[i]))
	}
	cols = append(cols, dataframe.NewColumn(varName, varArr))
	cols = append(cols, dataframe.NewColumn(valueName, valArr))

	out, err := dataframe.New(mem, cols...)
	for _, c := range cols {
		c.Release()
	}
	releaseAll(idArrs, varArr, valArr)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveVars normalizes and validates the identifier and value column
// selections. Both returned slices preserve selection order with
// duplicates removed. Pure function over its inputs.
func resolveVars(f *dataframe.Frame, idVars, valueVars []string) ([]string, []string, error) {
	ids := dedupe(idVars)
	if missing := missingFrom(f, ids); len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Kind: IdentifierVars, Names: missing}
	}

	var vals []string
	if valueVars == nil {
		idSet := make(map[string]struct{}, len(ids))
		for _, name := range ids {
			idSet[name] = struct{}{}
		}
		for _, name := range f.ColumnNames() {
			if _, isID := idSet[name]; !isID {
				vals = append(vals, name)
			}
		}
	} else {
		vals = dedupe(valueVars)
		if missing := missingFrom(f, vals); len(missing) > 0 {
			return nil, nil, &MissingColumnsError{Kind: ValueVars, Names: missing}
		}
	}

	valSet := make(map[string]struct{}, len(vals))
	for _, name := range vals {
		valSet[name] = struct{}{}
	}
	var overlap []string
	for _, name := range ids {
		if _, both := valSet[name]; both {
			overlap = append(overlap, name)
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		return nil, nil, &OverlapError{Names: overlap}
	}
	return ids, vals, nil
}

// commonType confirms every value column shares one element type and that
// none is dictionary-encoded. With no value columns it returns the null
// type, which types the empty value column of a zero-row result.
func commonType(f *dataframe.Frame, valueVars []string) (arrow.DataType, error) {
	var want arrow.DataType
	for _, name := range valueVars {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", dataframe.ErrColumnNotFound, name)
		}
		dt := col.DataType()
		if dt.ID() == arrow.DICTIONARY {
			return nil, &UnsupportedTypeError{Column: name, Type: dt}
		}
		if want == nil {
			want = dt
			continue
		}
		if !arrow.TypeEqual(want, dt) {
			return nil, &InconsistentTypesError{Column: name, Want: want, Got: dt}
		}
	}
	if want == nil {
		want = arrow.Null
	}
	return want, nil
}

// variableArray builds the dictionary-encoded variable column: block j is
// filled with code j, and the category set is names in order.
func variableArray(mem memory.Allocator, names []string, n int) arrow.Array {
	idxB := array.NewInt8Builder(mem)
	defer idxB.Release()
	idxB.Reserve(n * len(names))
	for j := range names {
		for i := 0; i < n; i++ {
			idxB.Append(int8(j))
		}
	}
	indices := idxB.NewArray()
	defer indices.Release()

	dictB := array.NewStringBuilder(mem)
	defer dictB.Release()
	dictB.AppendValues(names, nil)
	dict := dictB.NewArray()
	defer dict.Release()

	dt := &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int8,
		ValueType: arrow.BinaryTypes.String,
	}
	return array.NewDictionaryArray(dt, indices, dict)
}

func missingFrom(f *dataframe.Frame, names []string) []string {
	var missing []string
	for _, name := range names {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func releaseAll(idArrs []arrow.Array, varArr, valArr arrow.Array) {
	for _, a := range idArrs {
		if a != nil {
			a.Release()
		}
	}
	if varArr != nil {
		varArr.Release()
	}
	if valArr != nil {
		valArr.Release()
	}
}
