package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/exchange"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
	"github.com/jonathan/job-tracker/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every application as JSON or CSV",
	Long: `Export every application, archived ones included. The JSON form is the
same document import accepts; the CSV form is for spreadsheets and cannot be
imported back.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	var write func(io.Writer, []types.JobApplication) error
	switch exportFormat {
	case "json":
		write = exchange.WriteJSON
	case "csv":
		write = exchange.WriteCSV
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
	}

	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		apps, err := tracker.New(kv).List(ctx)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, exportOut, func(w io.Writer) error { return write(w, apps) }); err != nil {
			return err
		}
		if exportOut != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d applications to %s\n", len(apps), exportOut)
		}
		return nil
	})
}

// writeOutput runs fn against path, or against the command's stdout when path
// is empty
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
