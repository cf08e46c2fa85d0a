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
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileType represents the type of a data file.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeDeltaSharingProfile
)

// DetectFileType determines the type of a file from its extension and,
// for JSON-like files, its content.
func DetectFileType(path string, content string) FileType {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json", ".share", ".txt":
		// A .json/.share/.txt file may be a Delta Sharing profile or
		// plain JSON data.
		if isDeltaSharingProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// probeWorthy reports whether Load needs the file content to classify it.
func probeWorthy(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".share", ".txt":
		return true
	default:
		return false
	}
}

// isDeltaSharingProfile checks if the content looks like a Delta Sharing
// profile: a JSON object with shareCredentialsVersion, endpoint and
// bearerToken fields.
func isDeltaSharingProfile(content string) bool {
	var profile map[string]interface{}
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]

	return hasVersion && hasEndpoint && hasBearerToken
}

// DetectCSVSeparator tries to detect the CSV separator from the first
// line of the file, falling back to comma.
func DetectCSVSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}

	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	// Fixed candidate order keeps ties deterministic.
	candidates := []rune{',', ';', '\t', '|'}
	maxCount := 0
	detected := ','
	for _, sep := range candidates {
		if count := strings.Count(firstLine, string(sep)); count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected, nil
}

// SeparatorName returns a human-readable name for a separator rune.
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}
