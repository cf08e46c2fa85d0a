// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export writes dataframe frames to Parquet, CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"longform/dataframe"
)

// Format represents a supported export format.
type Format int

const (
	FormatParquet Format = iota
	FormatCSV
	FormatJSON
)

// ErrUnknownFormat is returned for file extensions no exporter handles.
var ErrUnknownFormat = errors.New("unknown export format")

// FormatForPath picks the export format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Write stores the frame at path in the format implied by its extension.
func Write(f *dataframe.Frame, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatParquet:
		return ToParquet(f, path)
	case FormatCSV:
		return ToCSV(f, path)
	default:
		return ToJSON(f, path)
	}
}

// ToParquet writes the frame to a snappy-compressed Parquet file.
func ToParquet(f *dataframe.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer out.Close()

	table := f.Table()
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), out, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}

// ToCSV writes the frame to a comma-separated file with a header row.
// Null cells become empty fields.
func ToCSV(f *dataframe.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(f.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		vals, err := f.Row(i)
		if err != nil {
			return err
		}
		for j, v := range vals {
			row[j] = v.Formatted
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// ToJSON writes the frame as an indented JSON array of objects. Null
// cells become JSON null.
func ToJSON(f *dataframe.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer out.Close()

	names := f.ColumnNames()
	records := make([]map[string]interface{}, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		vals, err := f.Row(i)
		if err != nil {
			return err
		}
		record := make(map[string]interface{}, len(names))
		for j, v := range vals {
			if v.IsNull {
				record[names[j]] = nil
			} else {
				record[names[j]] = v.Raw
			}
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
