package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application with its contacts, documents and history",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the record as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		app, err := tracker.New(kv).Get(ctx, args[0])
		if err != nil {
			return err
		}

		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintApplication(app)
		return nil
	})
}
