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
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"longform/dataframe"
	"longform/source"
)

func newInspectCommand() *cobra.Command {
	var headRows int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the schema and first rows of a table",
		Example: `  longform inspect -i sales.parquet
  longform inspect -i sales.csv --rows 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, headRows)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input file (CSV, Parquet, JSON or Delta Sharing profile)")
	cmd.Flags().IntVar(&headRows, "rows", 10, "Number of rows to preview")
	cmd.Flags().String("delta-share", "", "Delta Sharing share name")
	cmd.Flags().String("delta-schema", "", "Delta Sharing schema name")
	cmd.Flags().String("delta-table", "", "Delta Sharing table name")
	cmd.Flags().String("delta-file-id", "", "Delta Sharing file id (default: first file in the table)")
	cmd.Flags().Int("delta-timeout-seconds", 60, "Timeout per Delta Sharing server call")

	return cmd
}

func runInspect(cmd *cobra.Command, headRows int) error {
	cfg, err := LoadConfig(jobFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("no input file given (use --input or the job file)")
	}

	mem := memory.NewGoAllocator()
	f, err := source.Load(cmd.Context(), mem, cfg.Input, source.LoadOptions{
		Delta: deltaOptions(cfg),
	})
	if err != nil {
		return err
	}
	defer f.Release()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d rows, %d columns\n", cfg.Input, f.NumRows(), f.NumCols())
	renderSchema(w, f)
	if headRows > 0 {
		return renderHead(w, f, headRows)
	}
	return nil
}

func renderSchema(w io.Writer, f *dataframe.Frame) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Column", "Type", "Nulls"})
	for i := 0; i < f.NumCols(); i++ {
		col, _ := f.ColumnAt(i)
		t.AppendRow(table.Row{i, col.Name(), col.DataType().String(), col.NullCount()})
	}
	t.Render()
}

func renderHead(w io.Writer, f *dataframe.Frame, n int) error {
	if n > f.NumRows() {
		n = f.NumRows()
	}
	if n == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, f.NumCols())
	for i, name := range f.ColumnNames() {
		header[i] = name
	}
	t.AppendHeader(header)

	for r := 0; r < n; r++ {
		vals, err := f.Row(r)
		if err != nil {
			return err
		}
		row := make(table.Row, len(vals))
		for i, v := range vals {
			if v.IsNull {
				row[i] = "NULL"
			} else {
				row[i] = v.Formatted
			}
		}
		t.AppendRow(row)
	}
	t.Render()
	fmt.Fprintf(w, "(%d of %d rows)\n", n, f.NumRows())
	return nil
}
