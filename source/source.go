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

// Package source loads tabular data into dataframe frames from CSV,
// Parquet and JSON files and from Delta Sharing servers.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"longform/dataframe"
)

// Errors returned by the source package.
var (
	// ErrUnsupportedFormat is returned for files no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyInput is returned when an input holds no rows or records.
	ErrEmptyInput = errors.New("input is empty")
)

// Load reads the file at path into a frame, dispatching on the detected
// file type. Delta Sharing profiles additionally need the share, schema
// and table coordinates from opts.
func Load(ctx context.Context, mem memory.Allocator, path string, opts LoadOptions) (*dataframe.Frame, error) {
	content := ""
	if probeWorthy(path) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		content = string(raw)
	}

	var (
		f   *dataframe.Frame
		err error
	)
	switch ft := DetectFileType(path, content); ft {
	case FileTypeCSV:
		f, err = LoadCSV(mem, path)
	case FileTypeParquet:
		f, err = LoadParquet(ctx, mem, path)
	case FileTypeJSON:
		f, err = LoadJSON(mem, path)
	case FileTypeDeltaSharingProfile:
		f, err = LoadDeltaTable(ctx, mem, content, opts.Delta)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	f.SetMetadata("source", path)
	return f, nil
}

// LoadOptions carries loader settings that cannot be derived from the
// file itself.
type LoadOptions struct {
	// Delta configures Delta Sharing loads; ignored for local files.
	Delta DeltaOptions
}
