package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
	"github.com/jonathan/job-tracker/internal/types"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new job application",
	Long: `Record a new job application. With --from-url the posting page is fetched and
its title, company, location and description prefill the record; any flag given
explicitly wins over the fetched value.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addFields  appFlags
	addFromURL string
	addBrowser bool
	addRefresh bool
)

func init() {
	addFields.register(addCmd.Flags())
	addCmd.Flags().StringVar(&addFromURL, "from-url", "", "Prefill from a job posting URL")
	addCmd.Flags().BoolVar(&addBrowser, "browser", false, "Render script-heavy postings in headless Chrome")
	addCmd.Flags().BoolVar(&addRefresh, "refresh", false, "Ignore the cached copy of the posting page")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		req := types.CreateApplicationRequest{
			JobType:     types.JobTypeFullTime,
			WorkMode:    types.WorkModeOnSite,
			AppliedDate: types.FormatDate(time.Now()),
		}

		// Step 1: Prefill from the posting
		if addFromURL != "" {
			draft, err := draftFromURL(ctx, kv, addFromURL)
			if err != nil {
				return err
			}
			req = draft
		}

		// Step 2: Explicit flags win
		addFields.overlay(&req)

		// Step 3: Persist
		app, err := tracker.New(kv).Create(ctx, req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s @ %s)\n", app.ID, app.Role, app.Company)
		return nil
	})
}

func draftFromURL(ctx context.Context, kv store.KV, pageURL string) (types.CreateApplicationRequest, error) {
	opts := fetch.DefaultOptions()
	if t := settings.FetchTimeout(); t > 0 {
		opts.Timeout = t
	}
	opts.Browser = addBrowser

	fetcher := fetch.NewCachedFetcher(kv, &fetch.CachedFetcherConfig{
		Options:   opts,
		SkipCache: addRefresh,
	})
	posting, err := fetcher.FetchPosting(ctx, pageURL)
	if err != nil {
		return types.CreateApplicationRequest{}, fmt.Errorf("failed to import posting: %w", err)
	}
	return posting.Draft(types.FormatDate(time.Now())), nil
}
