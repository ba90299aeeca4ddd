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

package github

import "context"

// MockClient is a mock implementation of the Client interface for testing.
// Behavior is configured through the function fields; unset functions return
// empty results. Every call is recorded for verification.
type MockClient struct {
	SearchPullRequestCountFunc func(ctx context.Context, query string) (int, error)
	SearchPullRequestsFunc     func(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error)
	ListTeamMembersFunc        func(ctx context.Context, org, team string, opts SearchOptions) (*TeamMemberPage, error)

	// Call tracking
	CountCalls   int
	SearchCalls  int
	MemberCalls  int
	CountQueries []string
	Queries      []string
	LastOpts     SearchOptions
	LastOrg      string
	LastTeam     string
}

// SearchPullRequestCount implements the Client interface.
func (m *MockClient) SearchPullRequestCount(ctx context.Context, query string) (int, error) {
	m.CountCalls++
	m.CountQueries = append(m.CountQueries, query)

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if m.SearchPullRequestCountFunc != nil {
		return m.SearchPullRequestCountFunc(ctx, query)
	}
	return 0, nil
}

// SearchPullRequests implements the Client interface.
func (m *MockClient) SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	m.SearchCalls++
	m.Queries = append(m.Queries, query)
	m.LastOpts = opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.SearchPullRequestsFunc != nil {
		return m.SearchPullRequestsFunc(ctx, query, opts)
	}
	return &SearchPage{}, nil
}

// ListTeamMembers implements the Client interface.
func (m *MockClient) ListTeamMembers(ctx context.Context, org, team string, opts SearchOptions) (*TeamMemberPage, error) {
	m.MemberCalls++
	m.LastOrg = org
	m.LastTeam = team
	m.LastOpts = opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ListTeamMembersFunc != nil {
		return m.ListTeamMembersFunc(ctx, org, team, opts)
	}
	return &TeamMemberPage{}, nil
}

// PagedSearch returns a SearchPullRequestsFunc that serves the given pages
// in order, wiring cursors so pagination loops walk them naturally.
func PagedSearch(pages []SearchPage) func(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	return func(_ context.Context, _ string, opts SearchOptions) (*SearchPage, error) {
		idx := cursorIndex(opts.After)
		if idx >= len(pages) {
			return &SearchPage{}, nil
		}
		page := pages[idx]
		if idx < len(pages)-1 {
			page.HasNextPage = true
			page.EndCursor = cursorFor(idx + 1)
		} else {
			page.HasNextPage = false
			page.EndCursor = ""
		}
		return &page, nil
	}
}

// PagedMembers returns a ListTeamMembersFunc that serves the given pages in
// order, wiring cursors the same way PagedSearch does.
func PagedMembers(pages []TeamMemberPage) func(ctx context.Context, org, team string, opts SearchOptions) (*TeamMemberPage, error) {
	return func(_ context.Context, _, _ string, opts SearchOptions) (*TeamMemberPage, error) {
		idx := cursorIndex(opts.After)
		if idx >= len(pages) {
			return &TeamMemberPage{}, nil
		}
		page := pages[idx]
		if idx < len(pages)-1 {
			page.HasNextPage = true
			page.EndCursor = cursorFor(idx + 1)
		} else {
			page.HasNextPage = false
			page.EndCursor = ""
		}
		return &page, nil
	}
}

func cursorFor(idx int) string {
	return string(rune('a' + idx))
}

func cursorIndex(cursor string) int {
	if cursor == "" {
		return 0
	}
	return int(cursor[0] - 'a')
}
