package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/exchange"
	"github.com/jonathan/job-tracker/internal/filter"
	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
	"github.com/jonathan/job-tracker/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Search, filter and sort applications",
	Long: `List applications. --search matches every word as a substring of the
record's text, contacts and document names; with --indexed it matches word
prefixes over the core fields instead. Archived applications are hidden unless
--archived is include or only.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listOptions mirrors the list flags
type listOptions struct {
	search       string
	indexed      bool
	status       string
	jobType      string
	workMode     string
	level        string
	priority     string
	category     string
	location     string
	salaryMin    string
	salaryMax    string
	from         string
	to           string
	hasInterview string
	archived     string
	sortField    string
	sortOrder    string
	format       string
	summary      bool
}

var listOpts listOptions

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOpts.search, "search", "s", "", "Words that must all match")
	f.BoolVar(&listOpts.indexed, "indexed", false, "Use the prefix index for --search")
	f.StringVar(&listOpts.status, "status", "", "Filter by status (or all)")
	f.StringVar(&listOpts.jobType, "job-type", "", "Filter by job type")
	f.StringVar(&listOpts.workMode, "work-mode", "", "Filter by work mode")
	f.StringVar(&listOpts.level, "level", "", "Filter by experience level")
	f.StringVar(&listOpts.priority, "priority", "", "Filter by priority")
	f.StringVar(&listOpts.category, "category", "", "Filter by category")
	f.StringVar(&listOpts.location, "location", "", "Location substring")
	f.StringVar(&listOpts.salaryMin, "salary-min", "", "Lowest acceptable salary")
	f.StringVar(&listOpts.salaryMax, "salary-max", "", "Highest acceptable salary")
	f.StringVar(&listOpts.from, "from", "", "Applied on or after this date")
	f.StringVar(&listOpts.to, "to", "", "Applied on or before this date")
	f.StringVar(&listOpts.hasInterview, "has-interview", "", "true or false")
	f.StringVar(&listOpts.archived, "archived", "", "exclude, include or only (default from config)")
	f.StringVar(&listOpts.sortField, "sort", "", "Sort field: applied_date, company, role, status, priority, interview_date")
	f.StringVar(&listOpts.sortOrder, "order", "", "asc or desc")
	f.StringVar(&listOpts.format, "format", "table", "table, json or csv")
	f.BoolVar(&listOpts.summary, "summary", false, "Print counts per status after the list")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	q, err := buildQuery(listOpts, settings.DefaultSort, settings.DefaultOrder, settings.ShowArchived)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, kv store.KV) error {
		apps, err := tracker.New(kv).List(ctx)
		if err != nil {
			return err
		}

		view := filter.View(apps, q)
		out := cmd.OutOrStdout()

		switch listOpts.format {
		case "json":
			return exchange.WriteJSON(out, view)
		case "csv":
			return exchange.WriteCSV(out, view)
		case "table":
			if err := writeTable(out, view); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want table, json or csv)", listOpts.format)
		}

		if listOpts.summary {
			observability.NewPrinter(out).PrintSummary(apps)
		}
		return nil
	})
}

// buildQuery turns the flags into a view query, falling back to the
// configured sort and archive defaults
func buildQuery(o listOptions, defaultSort, defaultOrder string, showArchived bool) (filter.Query, error) {
	field, order := o.sortField, o.sortOrder
	if field == "" {
		field = defaultSort
	}
	if order == "" {
		order = defaultOrder
	}
	sortSpec, err := filter.ParseSortSpec(field, order)
	if err != nil {
		return filter.Query{}, err
	}

	spec := filter.Spec{
		Status:          types.Status(o.status),
		JobType:         types.JobType(o.jobType),
		WorkMode:        types.WorkMode(o.workMode),
		ExperienceLevel: types.ExperienceLevel(o.level),
		Priority:        types.Priority(o.priority),
		Category:        o.category,
		Location:        o.location,
	}
	if o.status != "" && o.status != types.All && !types.Status(o.status).Valid() {
		return filter.Query{}, fmt.Errorf("unknown status %q", o.status)
	}

	if o.salaryMin != "" || o.salaryMax != "" {
		bounds := &filter.SalaryBounds{}
		if o.salaryMin != "" {
			v, ok := filter.ParseSalary(o.salaryMin)
			if !ok {
				return filter.Query{}, fmt.Errorf("invalid --salary-min %q", o.salaryMin)
			}
			bounds.Min = v
		}
		if o.salaryMax != "" {
			v, ok := filter.ParseSalary(o.salaryMax)
			if !ok {
				return filter.Query{}, fmt.Errorf("invalid --salary-max %q", o.salaryMax)
			}
			bounds.Max = v
		}
		spec.SalaryRange = bounds
	}

	if o.from != "" || o.to != "" {
		for _, d := range []string{o.from, o.to} {
			if _, ok := types.ParseDate(d); d != "" && !ok {
				return filter.Query{}, fmt.Errorf("invalid date %q", d)
			}
		}
		spec.DateRange = &filter.DateRange{Start: o.from, End: o.to}
	}

	if o.hasInterview != "" {
		v, err := strconv.ParseBool(o.hasInterview)
		if err != nil {
			return filter.Query{}, fmt.Errorf("invalid --has-interview %q", o.hasInterview)
		}
		spec.HasInterview = &v
	}

	archived := o.archived
	if archived == "" {
		archived = "exclude"
		if showArchived {
			archived = "include"
		}
	}
	switch archived {
	case "exclude":
		spec.Archived = new(bool)
	case "only":
		yes := true
		spec.Archived = &yes
	case "include":
	default:
		return filter.Query{}, fmt.Errorf("invalid --archived %q (want exclude, include or only)", o.archived)
	}

	return filter.Query{
		Text:    o.search,
		Filter:  spec,
		Sort:    sortSpec,
		Indexed: o.indexed,
	}, nil
}

func writeTable(out io.Writer, apps []types.JobApplication) error {
	if len(apps) == 0 {
		_, err := fmt.Fprintln(out, "No applications found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tSTATUS\tAPPLIED\tMODE\tPRIORITY\tSALARY")
	for i := range apps {
		a := &apps[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Company, a.Role, a.Status, a.AppliedDate, a.WorkMode,
			dash(string(a.Priority)), dash(observability.FormatSalary(a.SalaryRange)))
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
