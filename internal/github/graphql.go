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

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	"go.uber.org/zap"

	"github.com/prtallyhq/prtally/internal/apierror"
	pterrors "github.com/prtallyhq/prtally/internal/errors"
	"github.com/prtallyhq/prtally/pkg/version"
)

// GraphQLClient implements the GitHub Client interface using the GraphQL API.
// It provides access to GitHub's search and organisation data with support
// for pagination, error classification, and safety features like response
// size limits.
type GraphQLClient struct {
	client    *graphql.Client
	token     string
	inspector apierror.Inspector
	logger    *zap.Logger
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint. The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Connection pooling tuned for repeated API calls
//
// A nil logger disables request tracing.
func NewGraphQLClient(token, endpoint string, logger *zap.Logger) *GraphQLClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		token:     token,
		inspector: apierror.NewInspector(),
		logger:    logger,
	}
}

// SearchPullRequestCount returns the total number of search hits GitHub
// declares for a pull request search query. It requests a single node so
// counting never walks result pages.
func (c *GraphQLClient) SearchPullRequestCount(ctx context.Context, searchQuery string) (int, error) {
	var query struct {
		Search struct {
			IssueCount graphql.Int
		} `graphql:"search(query: $query, type: ISSUE, first: 1)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(searchQuery),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return 0, c.mapError(err, fmt.Sprintf("search %q", searchQuery))
	}

	c.logger.Debug("search count fetched",
		zap.String("query", searchQuery),
		zap.Int("count", int(query.Search.IssueCount)))

	return int(query.Search.IssueCount), nil
}

// SearchPullRequests fetches a page of pull requests matching a search
// query. It supports cursor-based pagination via opts.After and configurable
// page sizes through opts.PageSize. Each node carries the reviews needed for
// client-side review-window filtering.
func (c *GraphQLClient) SearchPullRequests(ctx context.Context, searchQuery string, opts SearchOptions) (*SearchPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var query struct {
		Search struct {
			IssueCount graphql.Int
			PageInfo   struct {
				HasNextPage graphql.Boolean
				EndCursor   graphql.String
			}
			Nodes []struct {
				PullRequest struct {
					Number    graphql.Int
					Title     graphql.String
					URL       graphql.String
					State     graphql.String
					Merged    graphql.Boolean
					CreatedAt time.Time
					Author    *struct {
						Login graphql.String
					} `graphql:"author"`
					Repository struct {
						NameWithOwner graphql.String
					} `graphql:"repository"`
					Reviews struct {
						Nodes []struct {
							CreatedAt time.Time
							Author    *struct {
								Login graphql.String
							} `graphql:"author"`
						}
					} `graphql:"reviews(first: 100)"`
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(query: $query, type: ISSUE, first: $first, after: $after)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(searchQuery),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		variables["after"] = graphql.NewString(graphql.String(opts.After))
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, fmt.Sprintf("search %q", searchQuery))
	}

	page := &SearchPage{
		IssueCount:   int(query.Search.IssueCount),
		HasNextPage:  bool(query.Search.PageInfo.HasNextPage),
		EndCursor:    string(query.Search.PageInfo.EndCursor),
		PullRequests: make([]PullRequestSummary, 0, len(query.Search.Nodes)),
	}
	if page.HasNextPage && page.EndCursor == "" {
		return nil, fmt.Errorf("search response declares another page without a cursor: %w", pterrors.ErrMalformedResponse)
	}

	for _, node := range query.Search.Nodes {
		pr := node.PullRequest
		// Deleted accounts come back as null authors; reports use "unknown".
		author := "unknown"
		if pr.Author != nil && pr.Author.Login != "" {
			author = string(pr.Author.Login)
		}

		summary := PullRequestSummary{
			Number:     int(pr.Number),
			Title:      string(pr.Title),
			URL:        string(pr.URL),
			Repository: string(pr.Repository.NameWithOwner),
			Author:     author,
			State:      string(pr.State),
			Merged:     bool(pr.Merged),
			CreatedAt:  pr.CreatedAt,
			Reviews:    make([]Review, 0, len(pr.Reviews.Nodes)),
		}

		for _, review := range pr.Reviews.Nodes {
			reviewer := "unknown"
			if review.Author != nil && review.Author.Login != "" {
				reviewer = string(review.Author.Login)
			}
			summary.Reviews = append(summary.Reviews, Review{
				Author:    reviewer,
				CreatedAt: review.CreatedAt,
			})
		}

		page.PullRequests = append(page.PullRequests, summary)
	}

	c.logger.Debug("search page fetched",
		zap.String("query", searchQuery),
		zap.Int("nodes", len(page.PullRequests)),
		zap.Int("issueCount", page.IssueCount),
		zap.Bool("hasNextPage", page.HasNextPage))

	return page, nil
}

// ListTeamMembers fetches a page of members of an organisation team,
// preserving the order GitHub returned. An unknown team slug fails with
// ErrTeamNotFound.
func (c *GraphQLClient) ListTeamMembers(ctx context.Context, org, team string, opts SearchOptions) (*TeamMemberPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var query struct {
		Organization struct {
			Team *struct {
				Members struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						Login graphql.String
						Name  graphql.String
					}
				} `graphql:"members(first: $first, after: $after)"`
			} `graphql:"team(slug: $team)"`
		} `graphql:"organization(login: $org)"`
	}

	variables := map[string]interface{}{
		"org":   graphql.String(org),
		"team":  graphql.String(team),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		variables["after"] = graphql.NewString(graphql.String(opts.After))
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, fmt.Sprintf("team '%s' in organisation '%s'", team, org))
	}

	if query.Organization.Team == nil {
		return nil, fmt.Errorf("team '%s' was not found in organisation '%s': %w", team, org, pterrors.ErrTeamNotFound)
	}

	members := query.Organization.Team.Members
	page := &TeamMemberPage{
		HasNextPage: bool(members.PageInfo.HasNextPage),
		EndCursor:   string(members.PageInfo.EndCursor),
		Members:     make([]TeamMember, 0, len(members.Nodes)),
	}
	if page.HasNextPage && page.EndCursor == "" {
		return nil, fmt.Errorf("team members response declares another page without a cursor: %w", pterrors.ErrMalformedResponse)
	}

	for _, node := range members.Nodes {
		if node.Login == "" {
			return nil, fmt.Errorf("team members response missing a member login: %w", pterrors.ErrMalformedResponse)
		}
		page.Members = append(page.Members, TeamMember{
			Login: string(node.Login),
			Name:  string(node.Name),
		})
	}

	c.logger.Debug("team members page fetched",
		zap.String("org", org),
		zap.String("team", team),
		zap.Int("members", len(page.Members)),
		zap.Bool("hasNextPage", page.HasNextPage))

	return page, nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(err error, subject string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded while querying %s. Please wait before retrying: %w", subject, pterrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or the configured token environment variable: %w", pterrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("%s not found. Please check the name and your access permissions: %w", subject, pterrors.ErrTeamNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API while querying %s. Please check your internet connection and try again: %w", subject, pterrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to query %s: %w", subject, err)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds authentication header and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("prtally/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024,
		}
	}

	return resp, nil
}
