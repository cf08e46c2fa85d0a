package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deltaProfile = `{
	"shareCredentialsVersion": 1,
	"endpoint": "https://sharing.example.com/delta-sharing/",
	"bearerToken": "token"
}`

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    FileType
	}{
		{"csv extension", "data.csv", "", FileTypeCSV},
		{"parquet extension", "data.parquet", "", FileTypeParquet},
		{"plain json", "data.json", `[{"a": 1}]`, FileTypeJSON},
		{"share profile", "config.share", deltaProfile, FileTypeDeltaSharingProfile},
		{"json profile", "profile.json", deltaProfile, FileTypeDeltaSharingProfile},
		{"unknown", "data.bin", "", FileTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFileType(tt.path, tt.content))
		})
	}
}

func TestIsDeltaSharingProfile(t *testing.T) {
	assert.True(t, isDeltaSharingProfile(deltaProfile))
	assert.False(t, isDeltaSharingProfile(`{"endpoint": "x"}`))
	assert.False(t, isDeltaSharingProfile("not json"))
}

func TestDetectCSVSeparator(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n", '\t'},
		{"pipe", "a|b|c\n", '|'},
		{"empty file", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.first), 0o644))
			sep, err := DetectCSVSeparator(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sep)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	mem := memory.NewGoAllocator()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("name;age\nada;36\ngrace;\n"), 0o644))

	f, err := LoadCSV(mem, path)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, []string{"name", "age"}, f.ColumnNames())
	assert.Equal(t, "semicolon", f.Metadata()["csv_separator"])

	age, ok := f.Column("age")
	require.True(t, ok)
	assert.True(t, age.IsNull(1))
}

func TestLoadCSVEmpty(t *testing.T) {
	mem := memory.NewGoAllocator()
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err := LoadCSV(mem, path)
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	mem := memory.NewGoAllocator()
	path := filepath.Join(t.TempDir(), "data.json")
	payload := `[
		{"name": "ada", "age": 36, "active": true},
		{"name": "grace", "active": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	f, err := LoadJSON(mem, path)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, 2, f.NumRows())
	// Keys come out sorted.
	assert.Equal(t, []string{"active", "age", "name"}, f.ColumnNames())

	age, ok := f.Column("age")
	require.True(t, ok)
	v, err := age.Value(0)
	require.NoError(t, err)
	assert.Equal(t, 36.0, v.Raw)
	assert.True(t, age.IsNull(1))
}

func TestLoadJSONSingleObject(t *testing.T) {
	mem := memory.NewGoAllocator()
	path := filepath.Join(t.TempDir(), "one.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": "x"}`), 0o644))

	f, err := LoadJSON(mem, path)
	require.NoError(t, err)
	defer f.Release()
	assert.Equal(t, 1, f.NumRows())
}

func TestLoadDispatch(t *testing.T) {
	mem := memory.NewGoAllocator()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	f, err := Load(t.Context(), mem, path, LoadOptions{})
	require.NoError(t, err)
	defer f.Release()
	assert.Equal(t, path, f.Metadata()["source"])

	_, err = Load(t.Context(), mem, filepath.Join(t.TempDir(), "data.bin"), LoadOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
