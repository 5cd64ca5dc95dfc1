package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an application",
	Long: `Change fields of an application. Only flags given on the command line are
applied; pass an empty value (--notes "") to clear an optional field. A status
change is recorded in the history with --status-note or a generated note.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateFields     appFlags
	updateStatusNote string
)

func init() {
	updateFields.register(updateCmd.Flags())
	updateCmd.Flags().StringVar(&updateStatusNote, "status-note", "", "History note for a status change")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	req := updateFields.update(cmd.Flags())
	req.StatusNote = updateStatusNote

	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		app, err := tracker.New(kv).Update(ctx, args[0], req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (status: %s)\n", app.ID, app.Status)
		return nil
	})
}
