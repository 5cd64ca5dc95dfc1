package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Hide an application from the default list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setArchived(cmd, args[0], true)
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Return an archived application to the default list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setArchived(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}

func setArchived(cmd *cobra.Command, id string, archived bool) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		t := tracker.New(kv)
		verb := "Archived"
		var err error
		if archived {
			err = t.Archive(ctx, id)
		} else {
			verb = "Unarchived"
			err = t.Unarchive(ctx, id)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, id)
		return nil
	})
}
