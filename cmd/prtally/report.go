// Copyright 2025 PrTally, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prtallyhq/prtally/internal/config"
	"github.com/prtallyhq/prtally/internal/daterange"
	pterrors "github.com/prtallyhq/prtally/internal/errors"
	"github.com/prtallyhq/prtally/internal/github"
	"github.com/prtallyhq/prtally/internal/logging"
	"github.com/prtallyhq/prtally/internal/output"
	"github.com/prtallyhq/prtally/internal/stats"
)

// errInvalidInput marks CLI input errors that should exit with code 4.
var errInvalidInput = errors.New("invalid input")

// reportOptions carries the resolved flag values of the report command.
type reportOptions struct {
	users              []string
	team               string
	organisation       string
	mergedOnly         bool
	excludeSelfReviews bool

	date    string
	week    bool
	month   string
	quarter string
	half    string
	year    int
	yearSet bool

	pageSize    int
	pageSizeSet bool
	countsOnly  bool
	outputFile  string
	chartFile   string
	configFile  string
	token       string
	verbose     bool
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report pull request activity for users or a team",
		Long: `Report pull request activity statistics within a GitHub organisation.

Provide at least one --user or a --team. A single user gets a full report
with pull request listings; a team or multiple users get a per-member
counts table.

The period defaults to the current quarter. Select another period with
--date, --week, --month, --quarter, --half or --year. Without an explicit
--year, a period names its most recent occurrence.

Authentication is required via GitHub token:
  - Use --token flag to provide a token directly
  - Or set the configured token environment variable (default: GITHUB_ACCESS_TOKEN)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			opts.yearSet = cmd.Flags().Changed("year")
			opts.pageSizeSet = cmd.Flags().Changed("page-size")
			return runReport(ctx, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.users, "user", nil, "GitHub login to analyse; repeat to include multiple users")
	cmd.Flags().StringVar(&opts.team, "team", "", "Team slug within the organisation to analyse")
	cmd.Flags().StringVar(&opts.organisation, "organisation", "", "GitHub organisation to search within")
	cmd.Flags().BoolVar(&opts.mergedOnly, "merged-only", false, "Limit authored results to merged pull requests")
	cmd.Flags().BoolVar(&opts.excludeSelfReviews, "exclude-self-reviews", false, "Exclude self-authored pull requests when counting reviews")

	cmd.Flags().StringVar(&opts.date, "date", "", "Specific date (YYYY-MM-DD) to search")
	cmd.Flags().BoolVar(&opts.week, "week", false, "Use the most recent seven days ending today")
	cmd.Flags().StringVar(&opts.month, "month", "", "Month name or number (e.g. March or 3)")
	cmd.Flags().StringVar(&opts.quarter, "quarter", "", "Quarter to search (e.g. Q1)")
	cmd.Flags().StringVar(&opts.half, "half", "", "Half-year to search (e.g. H1)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Year to search, alone or with --month/--quarter/--half")

	cmd.Flags().IntVar(&opts.pageSize, "page-size", 50, "Page size for GitHub search pagination")
	cmd.Flags().BoolVar(&opts.countsOnly, "counts-only", false, "Only fetch counts; skip full pull request listings")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Write pull request records as NDJSON to this file")
	cmd.Flags().StringVar(&opts.chartFile, "chart", "", "Write a team summary bar chart as HTML to this file")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file path (default: .prtally.yaml, ~/.prtally/config.yaml)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging to stderr")

	return cmd
}

// runReport executes the report command.
func runReport(ctx context.Context, opts reportOptions) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, errInvalidInput)
	}

	org := opts.organisation
	if org == "" {
		org = cfg.Defaults.Organisation
	}
	if org == "" {
		return fmt.Errorf("organisation is required; pass --organisation or configure a default: %w", errInvalidInput)
	}
	if len(opts.users) == 0 && opts.team == "" {
		return fmt.Errorf("provide at least one --user or a --team to analyse: %w", errInvalidInput)
	}

	sel, err := buildSelector(opts)
	if err != nil {
		return err
	}
	rng, err := daterange.NewResolver(time.Now().UTC()).Resolve(sel)
	if err != nil {
		return err
	}

	token := getToken(opts.token, cfg.GitHub.TokenEnv)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag: %w", cfg.GitHub.TokenEnv, pterrors.ErrInvalidToken)
	}

	logger := logging.NewLogger(opts.verbose)
	defer func() { _ = logger.Sync() }()

	pageSize := opts.pageSize
	if !opts.pageSizeSet {
		pageSize = cfg.GetPageSize(org)
	}

	client := github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint, logger)
	svc, err := stats.NewService(client, org, pageSize, logger)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errInvalidInput)
	}
	teamSvc, err := stats.NewTeamService(svc)
	if err != nil {
		return err
	}

	statsOpts := stats.Options{
		MergedOnly:         opts.mergedOnly,
		ExcludeSelfReviews: opts.excludeSelfReviews,
		CountsOnly:         opts.countsOnly,
	}

	explicit := make([]github.TeamMember, 0, len(opts.users))
	for _, login := range opts.users {
		explicit = append(explicit, github.TeamMember{Login: login})
	}
	var teamMembers []github.TeamMember
	if opts.team != "" {
		teamMembers, err = teamSvc.Members(ctx, opts.team)
		if err != nil {
			return err
		}
	}
	members := mergeMembers(explicit, teamMembers)
	if len(members) == 0 {
		fmt.Println("No members to analyse.")
		return nil
	}

	report := output.NewReport(os.Stdout, org)

	if opts.team != "" || len(members) > 1 {
		logins := make([]string, 0, len(members))
		for _, m := range members {
			logins = append(logins, m.Login)
		}

		summary, sErr := teamSvc.SummarizeMembers(ctx, logins, rng, statsOpts)
		if sErr != nil {
			return sErr
		}
		summary.Team = opts.team

		label := buildLabel(opts.team, len(opts.users) > 0)
		report.PrintTeamSummary(label, summary, members, opts.excludeSelfReviews)

		if opts.outputFile != "" {
			if wErr := writeTeamRecords(opts.outputFile, summary); wErr != nil {
				return wErr
			}
		}
		if opts.chartFile != "" {
			title := fmt.Sprintf("Pull request counts for %s in %s", label, org)
			if cErr := output.RenderTeamChart(opts.chartFile, title, summary); cErr != nil {
				return cErr
			}
		}
		return nil
	}

	if opts.chartFile != "" {
		return fmt.Errorf("--chart requires a --team or multiple --user flags: %w", errInvalidInput)
	}

	summary, err := svc.Summarize(ctx, members[0].Login, rng, statsOpts)
	if err != nil {
		return err
	}
	report.PrintSummary(summary, statsOpts)

	if opts.outputFile != "" {
		return writeSummaryRecords(opts.outputFile, summary)
	}
	return nil
}

// buildSelector translates period flags into a date range selector.
// Conflicting combinations are left for the resolver to reject.
func buildSelector(opts reportOptions) (daterange.Selector, error) {
	var sel daterange.Selector
	sel.Week = opts.week

	if opts.date != "" {
		day, err := time.Parse(time.DateOnly, opts.date)
		if err != nil {
			return sel, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", opts.date, errInvalidInput)
		}
		sel.Date = &day
	}
	if opts.month != "" {
		m, err := daterange.ParseMonth(opts.month)
		if err != nil {
			return sel, err
		}
		sel.Month = &m
	}
	if opts.quarter != "" {
		q, err := daterange.ParseQuarter(opts.quarter)
		if err != nil {
			return sel, err
		}
		sel.Quarter = &q
	}
	if opts.half != "" {
		h, err := daterange.ParseHalf(opts.half)
		if err != nil {
			return sel, err
		}
		sel.Half = &h
	}
	if opts.yearSet {
		year := opts.year
		sel.Year = &year
	}

	return sel, nil
}

// mergeMembers merges member lists, deduplicating by login case-insensitively.
// First occurrence wins its position; a later entry that carries a display
// name fills in for a nameless earlier one.
func mergeMembers(lists ...[]github.TeamMember) []github.TeamMember {
	index := make(map[string]int)
	var merged []github.TeamMember

	for _, list := range lists {
		for _, member := range list {
			key := strings.ToLower(member.Login)
			if i, ok := index[key]; ok {
				if merged[i].Name == "" && member.Name != "" {
					merged[i] = member
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, member)
		}
	}

	return merged
}

// buildLabel describes what a team summary covers.
func buildLabel(team string, explicitUsers bool) string {
	switch {
	case team != "" && explicitUsers:
		return fmt.Sprintf("team %s and specified users", team)
	case team != "":
		return fmt.Sprintf("team %s", team)
	default:
		return "specified users"
	}
}

// getToken returns the GitHub token from the flag or the configured
// environment variable.
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

func writeSummaryRecords(filename string, summary *stats.Summary) error {
	writer, err := output.NewFileWriter(filename)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteSummary(summary); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", writer.Count(), filename)
	return nil
}

func writeTeamRecords(filename string, summary *stats.TeamSummary) error {
	writer, err := output.NewFileWriter(filename)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteTeamSummary(summary); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", writer.Count(), filename)
	return nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, pterrors.ErrInvalidToken) ||
		errors.Is(err, pterrors.ErrRateLimit) ||
		errors.Is(err, pterrors.ErrTeamNotFound) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, pterrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	if errors.Is(err, pterrors.ErrConflictingSelectors) ||
		errors.Is(err, pterrors.ErrInvalidMonth) ||
		errors.Is(err, pterrors.ErrInvalidQuarter) ||
		errors.Is(err, pterrors.ErrInvalidHalf) ||
		errors.Is(err, pterrors.ErrFuturePeriod) ||
		errors.Is(err, errInvalidInput) {
		return 4 // Selector/input errors
	}

	return 1 // General error
}
