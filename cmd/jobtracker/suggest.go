package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show status suggestions and follow-up reminders",
	Long: `Evaluate the active status rules against every application and list the
suggestions, most confident first, followed by heuristic reminders about
upcoming interviews, due follow-ups and stale applications.

With --auto-apply, suggestions from rules marked auto_apply whose confidence
exceeds 0.8 are applied to the stored records.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

var (
	suggestJSON      bool
	suggestAutoApply bool
)

// suggestReport is the --json output
type suggestReport struct {
	StatusSuggestions []automation.StatusSuggestion `json:"status_suggestions"`
	SmartSuggestions  []automation.SmartSuggestion  `json:"smart_suggestions"`
	AutoApplied       []string                      `json:"auto_applied,omitempty"`
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print the suggestions as JSON")
	suggestCmd.Flags().BoolVar(&suggestAutoApply, "auto-apply", false, "Apply eligible suggestions to the stored records")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		// Step 1: Snapshot applications, rules and library
		ws, err := tracker.LoadWorkspace(ctx, kv)
		if err != nil {
			return err
		}

		// Step 2: Run both analyzers
		now := time.Now()
		report := suggestReport{
			StatusSuggestions: automation.NewAnalyzer(ws.Rules).WithClock(func() time.Time { return now }).Analyze(ws.Applications),
			SmartSuggestions:  automation.SmartSuggestions(ws.Applications, now),
		}
		if report.StatusSuggestions == nil {
			report.StatusSuggestions = []automation.StatusSuggestion{}
		}
		if report.SmartSuggestions == nil {
			report.SmartSuggestions = []automation.SmartSuggestion{}
		}

		// Step 3: Optionally apply the eligible ones
		if suggestAutoApply {
			changed, err := tracker.New(kv).AutoProgress(ctx, report.StatusSuggestions)
			if err != nil {
				return fmt.Errorf("failed to apply suggestions: %w", err)
			}
			report.AutoApplied = changed
		}

		// Step 4: Report
		out := cmd.OutOrStdout()
		if suggestJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		if len(report.StatusSuggestions) == 0 && len(report.SmartSuggestions) == 0 {
			_, _ = fmt.Fprintln(out, "No suggestions")
			return nil
		}

		companies := make(map[string]string, len(ws.Applications))
		for _, app := range ws.Applications {
			companies[app.ID] = app.Company
		}
		p := observability.NewPrinter(out)
		p.PrintStatusSuggestions(report.StatusSuggestions, companies)
		p.PrintSmartSuggestions(report.SmartSuggestions)

		if suggestAutoApply {
			_, _ = fmt.Fprintf(out, "Auto-applied %d suggestion(s)\n", len(report.AutoApplied))
		}
		return nil
	})
}
