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

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prtallyhq/prtally/internal/github"
	"github.com/prtallyhq/prtally/internal/stats"
)

// Report renders summaries for humans. Single-user summaries become line
// listings, team summaries a fixed-width table with totals and shares.
type Report struct {
	out io.Writer
	org string
}

// NewReport creates a renderer writing to out for the given organisation.
func NewReport(out io.Writer, org string) *Report {
	return &Report{out: out, org: org}
}

// PrintSummary renders one user's activity. Counts always print; the pull
// request listings follow unless the summary was assembled counts-only.
func (r *Report) PrintSummary(s *stats.Summary, opts stats.Options) {
	mergedSuffix := ""
	if opts.MergedOnly {
		mergedSuffix = " Merged only."
	}
	fmt.Fprintf(r.out, "Authored PRs for %s in %s: %d from %s to %s (retrieved %d).%s\n",
		s.Login, r.org, s.AuthoredCount,
		s.Range.Start.Format(time.DateOnly), s.Range.End.Format(time.DateOnly),
		len(s.Authored), mergedSuffix)
	for _, pr := range s.Authored {
		fmt.Fprintf(r.out, "- %s #%d: %s %s\n", pr.Repository, pr.Number, pr.Title, pr.URL)
	}

	selfSuffix := ""
	if opts.ExcludeSelfReviews {
		selfSuffix = " Excluding self-authored."
	}
	fmt.Fprintf(r.out, "Reviewed PRs by %s in %s: %d from %s to %s (retrieved %d).%s\n",
		s.Login, r.org, s.ReviewedCount,
		s.Range.Start.Format(time.DateOnly), s.Range.End.Format(time.DateOnly),
		len(s.Reviewed), selfSuffix)
	for _, pr := range s.Reviewed {
		fmt.Fprintf(r.out, "- REVIEWED %s #%d: %s %s\n", pr.Repository, pr.Number, pr.Title, pr.URL)
	}
}

// PrintTeamSummary renders a per-member counts table. The label describes
// what was analysed ("team platform", "specified users"). Members supplies
// display names for logins where GitHub knows one. The review-share column
// only appears when self-reviews were excluded; without that exclusion the
// share has no meaningful denominator.
func (r *Report) PrintTeamSummary(label string, s *stats.TeamSummary, members []github.TeamMember, excludeSelfReviews bool) {
	names := make(map[string]string, len(members))
	for _, m := range members {
		if m.Name != "" {
			names[strings.ToLower(m.Login)] = m.Name
		}
	}

	fmt.Fprintf(r.out, "Pull request counts for %s in %s from %s to %s:\n",
		label, r.org,
		s.Range.Start.Format(time.DateOnly), s.Range.End.Format(time.DateOnly))
	if len(s.Members) == 0 {
		fmt.Fprintln(r.out, "- No members found.")
		return
	}

	rows := make([]string, len(s.Members))
	nameWidth := len("Member")
	for i, m := range s.Members {
		display := m.Login
		if name := names[strings.ToLower(m.Login)]; name != "" {
			display = fmt.Sprintf("%s (%s)", m.Login, name)
		}
		rows[i] = display
		if len(display) > nameWidth {
			nameWidth = len(display)
		}
	}

	var header string
	if excludeSelfReviews {
		header = fmt.Sprintf("%-*s %10s %7s %10s %11s", nameWidth, "Member", "Authored", "Auth %", "Reviewed", "Non-self %")
	} else {
		header = fmt.Sprintf("%-*s %10s %7s %10s", nameWidth, "Member", "Authored", "Auth %", "Reviewed")
	}
	rule := strings.Repeat("-", len(header))
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out, rule)

	for i, m := range s.Members {
		authoredShare := "n/a"
		if s.TotalAuthored > 0 {
			authoredShare = fmt.Sprintf("%.1f%%", m.AuthoredShare)
		}
		if excludeSelfReviews {
			reviewedShare := "n/a"
			if s.TotalAuthored-m.AuthoredCount > 0 {
				reviewedShare = fmt.Sprintf("%.1f%%", m.ReviewedShare)
			}
			fmt.Fprintf(r.out, "%-*s %10d %7s %10d %11s\n",
				nameWidth, rows[i], m.AuthoredCount, authoredShare, m.ReviewedCount, reviewedShare)
		} else {
			fmt.Fprintf(r.out, "%-*s %10d %7s %10d\n",
				nameWidth, rows[i], m.AuthoredCount, authoredShare, m.ReviewedCount)
		}
	}

	fmt.Fprintln(r.out, rule)
	if excludeSelfReviews {
		fmt.Fprintf(r.out, "%-*s %10d %7s %10d %11s\n",
			nameWidth, "Team total", s.TotalAuthored, "100%", s.TotalReviewed, "n/a")
	} else {
		fmt.Fprintf(r.out, "%-*s %10d %7s %10d\n",
			nameWidth, "Team total", s.TotalAuthored, "100%", s.TotalReviewed)
	}
}
