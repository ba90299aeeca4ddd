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

package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/prtallyhq/prtally/internal/daterange"
	"github.com/prtallyhq/prtally/internal/github"
)

// MemberStats holds one member's row of a team summary. Shares are
// percentages of the team totals; ReviewedShare is only computed when
// self-reviews are excluded, since the denominator (other members' pull
// requests) is undefined otherwise.
type MemberStats struct {
	Login         string  `json:"login"`
	AuthoredCount int     `json:"authored_count"`
	ReviewedCount int     `json:"reviewed_count"`
	AuthoredShare float64 `json:"authored_share"`
	ReviewedShare float64 `json:"reviewed_share,omitempty"`
}

// TeamSummary aggregates per-member activity over a range. Team is empty
// when the summary was built from an explicit login list.
type TeamSummary struct {
	Team          string              `json:"team,omitempty"`
	Range         daterange.DateRange `json:"-"`
	Members       []MemberStats       `json:"members"`
	TotalAuthored int                 `json:"total_authored"`
	TotalReviewed int                 `json:"total_reviewed"`
}

// TeamService resolves organisation team membership and aggregates
// per-member statistics into team summaries.
type TeamService struct {
	svc    *Service
	logger *zap.Logger
}

// NewTeamService wraps a statistics service with team aggregation.
func NewTeamService(svc *Service) (*TeamService, error) {
	if svc == nil {
		return nil, fmt.Errorf("stats service is required")
	}
	return &TeamService{
		svc:    svc,
		logger: svc.logger,
	}, nil
}

// Members returns the members of an organisation team in the order GitHub
// returns them, walking membership pages until exhausted.
func (t *TeamService) Members(ctx context.Context, team string) ([]github.TeamMember, error) {
	var (
		members []github.TeamMember
		cursor  string
		hasMore = true
	)

	for hasMore {
		page, err := t.svc.client.ListTeamMembers(ctx, t.svc.org, team, github.SearchOptions{
			PageSize: t.svc.pageSize,
			After:    cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("listing members of team %s/%s: %w", t.svc.org, team, err)
		}

		members = append(members, page.Members...)
		hasMore = page.HasNextPage
		cursor = page.EndCursor
	}

	t.logger.Debug("team members resolved",
		zap.String("org", t.svc.org),
		zap.String("team", team),
		zap.Int("members", len(members)))

	return members, nil
}

// SummarizeTeam aggregates activity for every member of a team. Team
// summaries are always counts-only; fetching full pull request lists for a
// whole team would multiply API cost for output nobody reads per-member.
func (t *TeamService) SummarizeTeam(ctx context.Context, team string, r daterange.DateRange, opts Options) (*TeamSummary, error) {
	members, err := t.Members(ctx, team)
	if err != nil {
		return nil, err
	}

	logins := make([]string, 0, len(members))
	for _, m := range members {
		logins = append(logins, m.Login)
	}

	summary, err := t.SummarizeMembers(ctx, logins, r, opts)
	if err != nil {
		return nil, err
	}
	summary.Team = team
	return summary, nil
}

// SummarizeMembers aggregates activity for an explicit login list.
// Duplicate logins are dropped, first occurrence wins. Always counts-only.
func (t *TeamService) SummarizeMembers(ctx context.Context, logins []string, r daterange.DateRange, opts Options) (*TeamSummary, error) {
	opts.CountsOnly = true

	seen := make(map[string]struct{}, len(logins))
	summary := &TeamSummary{Range: r}

	for _, login := range logins {
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}

		member, err := t.svc.Summarize(ctx, login, r, opts)
		if err != nil {
			return nil, err
		}

		summary.Members = append(summary.Members, MemberStats{
			Login:         login,
			AuthoredCount: member.AuthoredCount,
			ReviewedCount: member.ReviewedCount,
		})
		summary.TotalAuthored += member.AuthoredCount
		summary.TotalReviewed += member.ReviewedCount
	}

	for i := range summary.Members {
		m := &summary.Members[i]
		m.AuthoredShare = share(m.AuthoredCount, summary.TotalAuthored)
		if opts.ExcludeSelfReviews {
			// Each member can only review what the others authored.
			m.ReviewedShare = share(m.ReviewedCount, summary.TotalAuthored-m.AuthoredCount)
		}
	}

	return summary, nil
}

// share returns count as a percentage of total, 0 when total is 0.
func share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
