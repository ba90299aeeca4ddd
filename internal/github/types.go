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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

import (
	"time"

	"github.com/prtallyhq/prtally/internal/daterange"
)

// PullRequestSummary represents one pull request returned by a search query.
// It carries just enough metadata to aggregate activity statistics and to
// list the pull request in report output. Instances are immutable once
// decoded from a GraphQL node.
type PullRequestSummary struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Repository string    `json:"repository"`
	Author     string    `json:"author"`
	State      string    `json:"state"`
	Merged     bool      `json:"merged"`
	CreatedAt  time.Time `json:"created_at"`
	Reviews    []Review  `json:"reviews,omitempty"`
}

// Review describes a single review submitted on a pull request.
type Review struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// HasReviewBy reports whether the pull request carries at least one review
// by the given login submitted within the range. GitHub's search qualifiers
// cannot filter on review timestamps, so this check runs client-side.
func (p PullRequestSummary) HasReviewBy(login string, r daterange.DateRange) bool {
	for _, review := range p.Reviews {
		if review.Author == login && r.Contains(review.CreatedAt) {
			return true
		}
	}
	return false
}

// SearchPage represents a page of pull request search results. IssueCount is
// the total number of search hits GitHub declares for the query, independent
// of how many nodes this page holds, which lets counts-only callers skip
// pagination entirely.
type SearchPage struct {
	IssueCount   int
	PullRequests []PullRequestSummary
	HasNextPage  bool
	EndCursor    string
}

// TeamMember represents a single member of an organisation team.
type TeamMember struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

// TeamMemberPage represents a page of team membership results in the order
// GitHub returned them.
type TeamMemberPage struct {
	Members     []TeamMember
	HasNextPage bool
	EndCursor   string
}

// SearchOptions configures a paginated query.
type SearchOptions struct {
	// PageSize controls how many nodes to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use EndCursor from the previous page for the next one.
	After string
}

// Default values for paginated queries
const (
	defaultPageSize = 50
)
