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
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"longform/dataframe"
)

// LoadJSON reads a JSON file holding an array of objects (or a single
// object) into a frame. Columns are the union of all object keys, sorted
// for a deterministic order. Each column's type is inferred from its
// first non-null value (number, string or bool); values that do not fit
// the inferred type become null.
func LoadJSON(mem memory.Allocator, path string) (*dataframe.Frame, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(content, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		records = []map[string]interface{}{single}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	keySet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]dataframe.Column, 0, len(keys))
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	for _, key := range keys {
		cols = append(cols, jsonColumn(mem, key, records))
	}

	frame, err := dataframe.New(mem, cols...)
	if err != nil {
		return nil, fmt.Errorf("failed to build frame from JSON: %w", err)
	}
	return frame, nil
}

func jsonColumn(mem memory.Allocator, key string, records []map[string]interface{}) dataframe.Column {
	var sample interface{}
	for _, rec := range records {
		if v, ok := rec[key]; ok && v != nil {
			sample = v
			break
		}
	}

	n := len(records)
	valid := make([]bool, n)
	switch sample.(type) {
	case float64:
		values := make([]float64, n)
		for i, rec := range records {
			if v, ok := rec[key].(float64); ok {
				values[i] = v
				valid[i] = true
			}
		}
		return dataframe.NewFloat64Column(mem, key, values, valid)

	case bool:
		values := make([]bool, n)
		for i, rec := range records {
			if v, ok := rec[key].(bool); ok {
				values[i] = v
				valid[i] = true
			}
		}
		return dataframe.NewBoolColumn(mem, key, values, valid)

	default:
		// Strings, plus anything nested rendered as its JSON text.
		values := make([]string, n)
		for i, rec := range records {
			v, ok := rec[key]
			if !ok || v == nil {
				continue
			}
			valid[i] = true
			if s, isStr := v.(string); isStr {
				values[i] = s
			} else {
				b, _ := json.Marshal(v)
				values[i] = string(b)
			}
		}
		return dataframe.NewStringColumn(mem, key, values, valid)
	}
}
