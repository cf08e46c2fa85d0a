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

package source

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"longform/dataframe"
)

// LoadCSV reads a header-carrying CSV file into a frame, inferring the
// column types and auto-detecting the separator from the first line.
func LoadCSV(mem memory.Allocator, path string) (*dataframe.Frame, error) {
	sep, err := DetectCSVSeparator(path)
	if err != nil {
		sep = ','
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	rdr := csv.NewInferringReader(f,
		csv.WithAllocator(mem),
		csv.WithComma(sep),
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	if !rdr.Next() {
		if err := rdr.Err(); err != nil {
			return nil, fmt.Errorf("failed to read CSV data: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	rec := rdr.Record()

	frame, err := dataframe.FromRecord(mem, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to build frame from CSV: %w", err)
	}
	frame.SetMetadata("csv_separator", SeparatorName(sep))
	return frame, nil
}
