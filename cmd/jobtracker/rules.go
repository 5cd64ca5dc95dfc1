package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/exchange"
	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage status automation rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the status rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			rules, err := tracker.NewRuleBook(kv).Load(ctx)
			if err != nil {
				return err
			}
			if rulesJSON {
				return exchange.WriteRules(cmd.OutOrStdout(), rules)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintRules(rules)
			return nil
		})
	},
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <rule-id>",
	Short: "Enable a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleActive(cmd, args[0], true)
	},
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <rule-id>",
	Short: "Disable a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleActive(cmd, args[0], false)
	},
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			rules, err := tracker.NewRuleBook(kv).Reset(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %d default rules\n", len(rules))
			return nil
		})
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rules as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			rules, err := tracker.NewRuleBook(kv).Load(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd, rulesOut, func(w io.Writer) error {
				return exchange.WriteRules(w, rules)
			})
		})
	},
}

var rulesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the rules with a JSON rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read rules file: %w", err)
		}
		rules, err := exchange.ReadRules(data)
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			if err := tracker.NewRuleBook(kv).Save(ctx, rules); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rules\n", len(rules))
			return nil
		})
	},
}

var (
	rulesJSON bool
	rulesOut  string
)

func init() {
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "Print the rules as JSON")
	rulesExportCmd.Flags().StringVarP(&rulesOut, "out", "o", "", "Output file (default stdout)")

	rulesCmd.AddCommand(rulesListCmd, rulesEnableCmd, rulesDisableCmd, rulesResetCmd, rulesExportCmd, rulesImportCmd)
	rootCmd.AddCommand(rulesCmd)
}

func setRuleActive(cmd *cobra.Command, id string, active bool) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		if err := tracker.NewRuleBook(kv).SetActive(ctx, id, active); err != nil {
			return err
		}
		verb := "Disabled"
		if active {
			verb = "Enabled"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s rule %s\n", verb, id)
		return nil
	})
}
