// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/utilities/internal/gsheet"
	"github.com/pdiddy/utilities/internal/logging"
	"github.com/pdiddy/utilities/internal/store"
	"github.com/pdiddy/utilities/internal/table"
	"github.com/pdiddy/utilities/pkg/types"
)

var gsheetCmd = &cobra.Command{
	Use:   "gsheet",
	Short: "Load a public spreadsheet tab and print it",
	Long: `Gsheet downloads one tab of a spreadsheet shared as "anyone with the link
can view" from its export endpoint and prints it. Column types are inferred.

Output formats: table (first --rows rows), csv, json and yaml (all rows).
With --db the whole sheet is also written to a SQLite table, replacing any
previous copy.

Example:
  utilities gsheet --sheet_id 1qXEqjk56TDF6Zupwqsb-bFrS8G4kS8GXSVzo3-PiZlQ --gid 0`,
	Args: cobra.NoArgs,
	RunE: runGsheet,
}

func init() {
	gsheetCmd.Flags().String("sheet_id", "", "spreadsheet ID from the sheet URL")
	gsheetCmd.Flags().String("gid", "0", "tab ID (the gid= part of the sheet URL)")
	gsheetCmd.Flags().String("format", "", "export format: csv or xlsx (default csv)")
	gsheetCmd.Flags().String("sheet-name", "", "workbook sheet to read for xlsx exports (default first)")
	gsheetCmd.Flags().Int("rows", 0, "rows shown in table output (default 5)")
	gsheetCmd.Flags().StringP("output", "o", "table", "output: table, csv, json or yaml")
	gsheetCmd.Flags().String("db", "", "SQLite database file to save the sheet into")
	gsheetCmd.Flags().String("table", "sheet", "table name used with --db")
	bindFlag("gsheet.format", gsheetCmd.Flags().Lookup("format"))
	bindFlag("gsheet.rows", gsheetCmd.Flags().Lookup("rows"))

	rootCmd.AddCommand(gsheetCmd)
}

func runGsheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sheetID, _ := cmd.Flags().GetString("sheet_id")
	gid, _ := cmd.Flags().GetString("gid")
	sheetName, _ := cmd.Flags().GetString("sheet-name")
	output, _ := cmd.Flags().GetString("output")
	dbPath, _ := cmd.Flags().GetString("db")
	tableName, _ := cmd.Flags().GetString("table")

	switch output {
	case "table", "csv", "json", "yaml":
	default:
		return usageErrorf("unsupported output %q: use table, csv, json or yaml", output)
	}
	if cfg.Sheet.Rows < 0 {
		return usageErrorf("rows must not be negative: got %d", cfg.Sheet.Rows)
	}
	switch cfg.Sheet.Format {
	case "", types.SheetCSV, types.SheetXLSX:
	default:
		return usageErrorf("unsupported format %q: use csv or xlsx", cfg.Sheet.Format)
	}

	ctx := cmd.Context()
	loader := gsheet.NewLoader(cfg.Sheet)
	f, err := loader.Load(ctx, gsheet.Request{
		SheetID:   sheetID,
		GID:       gid,
		Format:    cfg.Sheet.Format,
		SheetName: sheetName,
	})
	if err != nil {
		return err
	}

	if dbPath != "" {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		n, err := s.SaveFrame(ctx, tableName, f)
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Info("saved sheet", "db", s.Path(), "table", tableName, "rows", n)
	}

	return writeFrame(cmd.OutOrStdout(), f, output, cfg.Sheet.Rows)
}

// writeFrame prints f in the chosen output format. Table output shows the
// first rows rows only.
func writeFrame(w io.Writer, f *table.Frame, output string, rows int) error {
	switch output {
	case "csv":
		return f.WriteCSV(w)
	case "json":
		return f.WriteJSON(w)
	case "yaml":
		return f.WriteYAML(w)
	case "table", "":
		if rows <= 0 {
			rows = types.DefaultConfig().Sheet.Rows
		}
		return f.Head(rows).Render(w)
	default:
		return fmt.Errorf("unsupported output %q", output)
	}
}
