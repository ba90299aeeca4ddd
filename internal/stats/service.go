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

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Options controls how a summary is assembled.
type Options struct {
	// MergedOnly restricts authored statistics to merged pull requests.
	MergedOnly bool

	// ExcludeSelfReviews drops pull requests authored by the reviewer from
	// the reviewed statistics.
	ExcludeSelfReviews bool

	// CountsOnly skips collecting the pull request lists. Authored counts
	// then come from a single search request instead of pagination.
	CountsOnly bool
}

// Summary holds the pull request activity of a single user over a range.
// The Authored and Reviewed lists are nil when assembled counts-only.
type Summary struct {
	Login         string                      `json:"login"`
	Range         daterange.DateRange         `json:"-"`
	AuthoredCount int                         `json:"authored_count"`
	ReviewedCount int                         `json:"reviewed_count"`
	Authored      []github.PullRequestSummary `json:"authored,omitempty"`
	Reviewed      []github.PullRequestSummary `json:"reviewed,omitempty"`
}

// Service computes pull request activity statistics for individual users
// within one organisation. It owns the search query construction and the
// pagination loops; the underlying transport is injected as a github.Client.
type Service struct {
	client   github.Client
	org      string
	pageSize int
	logger   *zap.Logger
}

// NewService creates a statistics service scoped to an organisation.
// Page size 0 selects the default of 50. A nil logger disables tracing.
func NewService(client github.Client, org string, pageSize int, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("github client is required")
	}
	if org == "" {
		return nil, fmt.Errorf("organisation is required")
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", maxPageSize, pageSize)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		client:   client,
		org:      org,
		pageSize: pageSize,
		logger:   logger,
	}, nil
}

// Organisation returns the organisation this service is scoped to.
func (s *Service) Organisation() string {
	return s.org
}

// CountAuthored returns how many pull requests the author opened within the
// range. GitHub's search result carries the total hit count, so this costs a
// single request regardless of how many pull requests match.
func (s *Service) CountAuthored(ctx context.Context, author string, r daterange.DateRange, mergedOnly bool) (int, error) {
	query := github.BuildAuthoredQuery(author, s.org, r, mergedOnly)

	count, err := s.client.SearchPullRequestCount(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("counting pull requests authored by %s: %w", author, err)
	}

	s.logger.Debug("authored count",
		zap.String("author", author),
		zap.String("range", r.String()),
		zap.Int("count", count))

	return count, nil
}

// ListAuthored returns every pull request the author opened within the
// range, walking result pages until exhausted.
func (s *Service) ListAuthored(ctx context.Context, author string, r daterange.DateRange, mergedOnly bool) ([]github.PullRequestSummary, error) {
	query := github.BuildAuthoredQuery(author, s.org, r, mergedOnly)

	prs, err := s.collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pull requests authored by %s: %w", author, err)
	}
	return prs, nil
}

// CountReviewed returns how many pull requests the reviewer reviewed within
// the range. Unlike CountAuthored this cannot read the search hit count:
// GitHub's search qualifiers match on update time, not review time, so every
// candidate page is fetched and filtered on review timestamps client-side.
func (s *Service) CountReviewed(ctx context.Context, reviewer string, r daterange.DateRange, excludeSelfReviews bool) (int, error) {
	prs, err := s.ListReviewed(ctx, reviewer, r, excludeSelfReviews)
	if err != nil {
		return 0, err
	}
	return len(prs), nil
}

// ListReviewed returns every pull request carrying at least one review by
// the reviewer within the range. With excludeSelfReviews, pull requests the
// reviewer also authored are dropped.
func (s *Service) ListReviewed(ctx context.Context, reviewer string, r daterange.DateRange, excludeSelfReviews bool) ([]github.PullRequestSummary, error) {
	query := github.BuildReviewedQuery(reviewer, s.org, r, excludeSelfReviews)

	candidates, err := s.collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pull requests reviewed by %s: %w", reviewer, err)
	}

	// The updated: qualifier over-matches; keep only pull requests with a
	// review by this reviewer actually dated inside the range.
	var reviewed []github.PullRequestSummary
	for _, pr := range candidates {
		if excludeSelfReviews && pr.Author == reviewer {
			continue
		}
		if pr.HasReviewBy(reviewer, r) {
			reviewed = append(reviewed, pr)
		}
	}

	s.logger.Debug("reviewed list filtered",
		zap.String("reviewer", reviewer),
		zap.String("range", r.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("reviewed", len(reviewed)))

	return reviewed, nil
}

// Summarize assembles the combined activity of one user over the range.
func (s *Service) Summarize(ctx context.Context, login string, r daterange.DateRange, opts Options) (*Summary, error) {
	summary := &Summary{
		Login: login,
		Range: r,
	}

	if opts.CountsOnly {
		count, err := s.CountAuthored(ctx, login, r, opts.MergedOnly)
		if err != nil {
			return nil, err
		}
		summary.AuthoredCount = count
	} else {
		authored, err := s.ListAuthored(ctx, login, r, opts.MergedOnly)
		if err != nil {
			return nil, err
		}
		summary.Authored = authored
		summary.AuthoredCount = len(authored)
	}

	reviewed, err := s.ListReviewed(ctx, login, r, opts.ExcludeSelfReviews)
	if err != nil {
		return nil, err
	}
	summary.ReviewedCount = len(reviewed)
	if !opts.CountsOnly {
		summary.Reviewed = reviewed
	}

	return summary, nil
}

// collect walks every page of a pull request search query.
func (s *Service) collect(ctx context.Context, query string) ([]github.PullRequestSummary, error) {
	var (
		prs     []github.PullRequestSummary
		cursor  string
		hasMore = true
	)

	for hasMore {
		page, err := s.client.SearchPullRequests(ctx, query, github.SearchOptions{
			PageSize: s.pageSize,
			After:    cursor,
		})
		if err != nil {
			return nil, err
		}

		prs = append(prs, page.PullRequests...)
		hasMore = page.HasNextPage
		cursor = page.EndCursor
	}

	return prs, nil
}
