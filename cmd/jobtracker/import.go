package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/exchange"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import applications from a JSON export",
	Long: `Import applications from a JSON file in the export format. The file is
checked against the application schema first. Ids already in the tracker are
rejected unless --replace discards the current collection.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importReplace bool

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Replace every stored application")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	// Step 1: Read and validate
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	apps, err := exchange.ReadJSON(data)
	if err != nil {
		return err
	}

	// Step 2: Merge into the store
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		if err := tracker.New(kv).Import(ctx, apps, importReplace); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d applications\n", len(apps))
		return nil
	})
}
