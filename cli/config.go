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

package cli

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"longform/reshape"
)

// Config holds a reshaping job: where the data comes from, how to melt
// it and where the result goes.
type Config struct {
	Input     string   `koanf:"input"`
	Output    string   `koanf:"output"`
	IDVars    []string `koanf:"id_vars"`
	ValueVars []string `koanf:"value_vars"`
	VarName   string   `koanf:"var_name"`
	ValueName string   `koanf:"value_name"`
	Script    string   `koanf:"script"`
	Verbose   bool     `koanf:"verbose"`

	Delta DeltaConfig `koanf:"delta"`
}

// DeltaConfig names a Delta Sharing table when the input is a sharing
// profile rather than a local file.
type DeltaConfig struct {
	Share          string `koanf:"share"`
	Schema         string `koanf:"schema"`
	Table          string `koanf:"table"`
	FileID         string `koanf:"file_id"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// LoadConfig merges job configuration from (lowest to highest priority)
// defaults, an optional YAML job file, LONGFORM_-prefixed environment
// variables and explicitly set CLI flags.
func LoadConfig(jobFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"var_name":              reshape.DefaultVarName,
		"value_name":            reshape.DefaultValueName,
		"verbose":               false,
		"delta.timeout_seconds": 60,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if jobFile != "" {
		if err := k.Load(file.Provider(jobFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading job file %s: %w", jobFile, err)
		}
	}

	// LONGFORM_VAR_NAME -> var_name, LONGFORM_DELTA__SHARE -> delta.share
	if err := k.Load(env.Provider("LONGFORM_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "LONGFORM_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// Delta flags are spelled --delta-share etc. but live under
			// the delta map in the job file.
			if rest, ok := strings.CutPrefix(key, "delta_"); ok {
				key = "delta." + rest
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode job config: %w", err)
	}
	return &cfg, nil
}
