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
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"longform/export"
	"longform/reshape"
	"longform/script"
	"longform/source"
)

func newMeltCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "melt",
		Short: "Unpivot a wide table into long format",
		Long: `Read a table, melt it from wide to long format and write the result.

Identifier columns are replicated per value column; the remaining columns
are stacked into a single value column alongside a dictionary-encoded
variable column naming the source column of each row. Leaving --value-vars
unset melts every column not listed in --id-vars.`,
		Example: `  # Melt all non-id columns of a CSV into a parquet file
  longform melt -i sales.csv -o sales_long.parquet --id-vars region,year

  # Load job settings from a YAML file, override the output on the flag
  longform melt -j job.yaml -o /tmp/out.json

  # Melt one file of a Delta Sharing table
  longform melt -i profile.share -o out.csv \
    --delta-share sales --delta-schema retail --delta-table orders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMelt(cmd)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input file (CSV, Parquet, JSON or Delta Sharing profile)")
	cmd.Flags().StringP("output", "o", "", "Output file (.csv, .parquet or .json)")
	cmd.Flags().StringSlice("id-vars", nil, "Comma-separated identifier columns")
	cmd.Flags().StringSlice("value-vars", nil, "Comma-separated columns to unpivot (default: all non-id columns)")
	cmd.Flags().String("var-name", reshape.DefaultVarName, "Name of the output variable column")
	cmd.Flags().String("value-name", reshape.DefaultValueName, "Name of the output value column")
	cmd.Flags().String("script", "", "Go script applied to the frame before melting")
	cmd.Flags().String("delta-share", "", "Delta Sharing share name")
	cmd.Flags().String("delta-schema", "", "Delta Sharing schema name")
	cmd.Flags().String("delta-table", "", "Delta Sharing table name")
	cmd.Flags().String("delta-file-id", "", "Delta Sharing file id (default: first file in the table)")
	cmd.Flags().Int("delta-timeout-seconds", 60, "Timeout per Delta Sharing server call")

	return cmd
}

func runMelt(cmd *cobra.Command) error {
	cfg, err := LoadConfig(jobFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("no input file given (use --input or the job file)")
	}
	if cfg.Output == "" {
		return errors.New("no output file given (use --output or the job file)")
	}

	mem := memory.NewGoAllocator()
	f, err := source.Load(cmd.Context(), mem, cfg.Input, source.LoadOptions{
		Delta: deltaOptions(cfg),
	})
	if err != nil {
		return err
	}
	defer func() { f.Release() }()
	slog.Info("loaded input", "path", cfg.Input, "rows", f.NumRows(), "columns", f.NumCols())

	if cfg.Script != "" {
		src, err := os.ReadFile(cfg.Script)
		if err != nil {
			return err
		}
		runner, err := script.NewRunner()
		if err != nil {
			return err
		}
		g, err := runner.Transform(string(src), f)
		if out := runner.Output(); out != "" {
			os.Stderr.WriteString(out)
		}
		if err != nil {
			return err
		}
		if g != f {
			f.Release()
			f = g
		}
		slog.Info("applied script", "path", cfg.Script, "rows", f.NumRows(), "columns", f.NumCols())
	}

	long, err := reshape.Melt(f, reshape.Options{
		IDVars:    cfg.IDVars,
		ValueVars: cfg.ValueVars,
		VarName:   cfg.VarName,
		ValueName: cfg.ValueName,
	})
	if err != nil {
		return err
	}
	defer long.Release()
	slog.Info("melted frame", "rows", long.NumRows(), "columns", long.NumCols())

	if err := export.Write(long, cfg.Output); err != nil {
		return err
	}
	slog.Info("wrote output", "path", cfg.Output)
	return nil
}

func deltaOptions(cfg *Config) source.DeltaOptions {
	return source.DeltaOptions{
		Share:   cfg.Delta.Share,
		Schema:  cfg.Delta.Schema,
		Table:   cfg.Delta.Table,
		FileID:  cfg.Delta.FileID,
		Timeout: time.Duration(cfg.Delta.TimeoutSeconds) * time.Second,
	}
}
