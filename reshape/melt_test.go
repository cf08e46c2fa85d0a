package reshape

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longform/dataframe"
)

// newWideFrame builds the reference frame A=[1,2], B=[10,20], C=[30,40].
func newWideFrame(t *testing.T, mem memory.Allocator) *dataframe.Frame {
	t.Helper()
	a := dataframe.NewInt64Column(mem, "A", []int64{1, 2}, nil)
	defer a.Release()
	b := dataframe.NewInt64Column(mem, "B", []int64{10, 20}, nil)
	defer b.Release()
	c := dataframe.NewInt64Column(mem, "C", []int64{30, 40}, nil)
	defer c.Release()
	f, err := dataframe.New(mem, a, b, c)
	require.NoError(t, err)
	t.Cleanup(f.Release)
	return f
}

func int64Values(t *testing.T, f *dataframe.Frame, name string) []int64 {
	t.Helper()
	col, ok := f.Column(name)
	require.True(t, ok, "column %q missing", name)
	out := make([]int64, col.Len())
	for i := range out {
		v, err := col.Value(i)
		require.NoError(t, err)
		require.False(t, v.IsNull)
		out[i] = v.Raw.(int64)
	}
	return out
}

func labels(t *testing.T, f *dataframe.Frame, name string) []string {
	t.Helper()
	col, ok := f.Column(name)
	require.True(t, ok, "column %q missing", name)
	out := make([]string, col.Len())
	for i := range out {
		v, err := col.Value(i)
		require.NoError(t, err)
		out[i] = v.Formatted
	}
	return out
}

func TestMeltBasic(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	out, err := Melt(f, Options{IDVars: []string{"A"}, ValueVars: []string{"B", "C"}})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 4, out.NumRows())
	assert.Equal(t, []string{"A", "variable", "value"}, out.ColumnNames())
	assert.Equal(t, []int64{1, 2, 1, 2}, int64Values(t, out, "A"))
	assert.Equal(t, []string{"B", "B", "C", "C"}, labels(t, out, "variable"))
	assert.Equal(t, []int64{10, 20, 30, 40}, int64Values(t, out, "value"))
}

func TestMeltDefaultValueVars(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	// value_vars omitted: defaults to all columns minus id_vars, in
	// frame order.
	out, err := Melt(f, Options{IDVars: []string{"A"}})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 4, out.NumRows())
	assert.Equal(t, []string{"B", "B", "C", "C"}, labels(t, out, "variable"))
	assert.Equal(t, []int64{10, 20, 30, 40}, int64Values(t, out, "value"))
}

func TestMeltNoIDVars(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	out, err := Melt(f, Options{})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 6, out.NumRows())
	assert.Equal(t, []string{"variable", "value"}, out.ColumnNames())
	assert.Equal(t, []int64{1, 2, 10, 20, 30, 40}, int64Values(t, out, "value"))
}

func TestMeltCustomNames(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	out, err := Melt(f, Options{
		IDVars:    []string{"A"},
		VarName:   "metric",
		ValueName: "reading",
	})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []string{"A", "metric", "reading"}, out.ColumnNames())
}

func TestMeltVariableDictionary(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	out, err := Melt(f, Options{IDVars: []string{"A"}, ValueVars: []string{"C", "B"}})
	require.NoError(t, err)
	defer out.Release()

	col, ok := out.Column("variable")
	require.True(t, ok)
	require.Equal(t, arrow.DICTIONARY, col.DataType().ID())

	dict := col.Array().(*array.Dictionary)
	values := dict.Dictionary().(*array.String)
	// Category set is exactly the value_vars sequence, order preserved.
	require.Equal(t, 2, values.Len())
	assert.Equal(t, "C", values.Value(0))
	assert.Equal(t, "B", values.Value(1))

	dt := col.DataType().(*arrow.DictionaryType)
	assert.Equal(t, arrow.PrimitiveTypes.Int8, dt.IndexType)

	// Block layout follows value_vars order, not frame order.
	assert.Equal(t, []string{"C", "C", "B", "B"}, labels(t, out, "variable"))
	assert.Equal(t, []int64{30, 40, 10, 20}, int64Values(t, out, "value"))
}

func TestMeltNullPropagation(t *testing.T) {
	mem := memory.NewGoAllocator()
	id := dataframe.NewStringColumn(mem, "site", []string{"x", "y", "z"}, nil)
	defer id.Release()
	temp := dataframe.NewFloat64Column(mem, "temp", []float64{1.5, 0, 3.5}, []bool{true, false, true})
	defer temp.Release()
	humidity := dataframe.NewFloat64Column(mem, "humidity", []float64{50, 60, 0}, []bool{true, true, false})
	defer humidity.Release()
	f, err := dataframe.New(mem, id, temp, humidity)
	require.NoError(t, err)
	defer f.Release()

	out, err := Melt(f, Options{IDVars: []string{"site"}})
	require.NoError(t, err)
	defer out.Release()

	require.Equal(t, 6, out.NumRows())
	val, ok := out.Column("value")
	require.True(t, ok)

	// Null positions carry over block by block, no fill values.
	wantNull := []bool{false, true, false, false, false, true}
	for i, want := range wantNull {
		assert.Equal(t, want, val.IsNull(i), "row %d", i)
	}
	v, err := val.Value(0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Raw)
	v, err = val.Value(5)
	require.NoError(t, err)
	assert.True(t, v.IsNull)
}

func TestMeltStringValues(t *testing.T) {
	mem := memory.NewGoAllocator()
	id := dataframe.NewInt64Column(mem, "id", []int64{1, 2}, nil)
	defer id.Release()
	first := dataframe.NewStringColumn(mem, "first", []string{"ada", "grace"}, nil)
	defer first.Release()
	last := dataframe.NewStringColumn(mem, "last", []string{"lovelace", "hopper"}, nil)
	defer last.Release()
	f, err := dataframe.New(mem, id, first, last)
	require.NoError(t, err)
	defer f.Release()

	out, err := Melt(f, Options{IDVars: []string{"id"}})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []string{"ada", "grace", "lovelace", "hopper"}, labels(t, out, "value"))
}

func TestMeltEmptyValueVars(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	// Explicitly empty (non-nil) selection: legal, zero-row output with
	// every column present and an empty category set.
	out, err := Melt(f, Options{IDVars: []string{"A", "B", "C"}, ValueVars: []string{}})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, []string{"A", "B", "C", "variable", "value"}, out.ColumnNames())

	col, ok := out.Column("variable")
	require.True(t, ok)
	dict := col.Array().(*array.Dictionary)
	assert.Equal(t, 0, dict.Dictionary().Len())
}

func TestMeltAllColumnsAsIDs(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	// id_vars covers every column, so the default value_vars set is empty.
	out, err := Melt(f, Options{IDVars: []string{"A", "B", "C"}})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 0, out.NumRows())
}

func TestMeltMissingIDVars(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	_, err := Melt(f, Options{IDVars: []string{"nonexistent"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, IdentifierVars, missing.Kind)
	assert.Equal(t, []string{"nonexistent"}, missing.Names)
}

func TestMeltMissingValueVarsListsAll(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	_, err := Melt(f, Options{IDVars: []string{"A"}, ValueVars: []string{"Z", "B", "Q"}})
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ValueVars, missing.Kind)
	// Every missing name is reported, sorted, not just the first.
	assert.Equal(t, []string{"Q", "Z"}, missing.Names)
}

func TestMeltOverlap(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	_, err := Melt(f, Options{IDVars: []string{"A"}, ValueVars: []string{"A"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlappingColumns)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, []string{"A"}, overlap.Names)
}

func TestMeltInconsistentTypes(t *testing.T) {
	mem := memory.NewGoAllocator()
	a := dataframe.NewInt64Column(mem, "a", []int64{1}, nil)
	defer a.Release()
	b := dataframe.NewFloat64Column(mem, "b", []float64{2.5}, nil)
	defer b.Release()
	f, err := dataframe.New(mem, a, b)
	require.NoError(t, err)
	defer f.Release()

	_, err = Melt(f, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentTypes)

	var mixed *InconsistentTypesError
	require.ErrorAs(t, err, &mixed)
	assert.Equal(t, "b", mixed.Column)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, mixed.Want))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, mixed.Got))
}

func TestMeltCategoricalValueColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	idxB := array.NewInt8Builder(mem)
	idxB.AppendValues([]int8{0, 1}, nil)
	indices := idxB.NewArray()
	idxB.Release()
	defer indices.Release()

	dictB := array.NewStringBuilder(mem)
	dictB.AppendValues([]string{"red", "blue"}, nil)
	dictVals := dictB.NewArray()
	dictB.Release()
	defer dictVals.Release()

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String}
	catArr := array.NewDictionaryArray(dt, indices, dictVals)
	defer catArr.Release()

	id := dataframe.NewInt64Column(mem, "id", []int64{1, 2}, nil)
	defer id.Release()
	cat := dataframe.NewColumn("color", catArr)
	defer cat.Release()
	f, err := dataframe.New(mem, id, cat)
	require.NoError(t, err)
	defer f.Release()

	_, err = Melt(f, Options{IDVars: []string{"id"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "color", unsupported.Column)
}

func TestMeltDeterminism(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)
	opts := Options{IDVars: []string{"A"}}

	first, err := Melt(f, opts)
	require.NoError(t, err)
	defer first.Release()
	second, err := Melt(f, opts)
	require.NoError(t, err)
	defer second.Release()

	r1 := first.Record()
	defer r1.Release()
	r2 := second.Record()
	defer r2.Release()
	assert.True(t, array.RecordEqual(r1, r2))
}

func TestMeltDoesNotTouchInput(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	out, err := Melt(f, Options{IDVars: []string{"A"}})
	require.NoError(t, err)
	out.Release()

	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, []string{"A", "B", "C"}, f.ColumnNames())
	assert.Equal(t, []int64{1, 2}, int64Values(t, f, "A"))
}

func TestResolveVarsDedupes(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := newWideFrame(t, mem)

	ids, vals, err := resolveVars(f, []string{"A", "A"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids)
	assert.Equal(t, []string{"B", "C"}, vals)
}
