package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete an application",
	Long:  "Permanently delete an application. Documents attached to it are returned to the document library.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		if err := tracker.New(kv).Delete(ctx, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}
