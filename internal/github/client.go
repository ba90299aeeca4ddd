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

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// SearchPullRequestCount returns the total number of hits GitHub declares
	// for a pull request search query, without paginating through results.
	SearchPullRequestCount(ctx context.Context, query string) (int, error)

	// SearchPullRequests retrieves a page of pull requests matching a search
	// query. It supports cursor-based pagination through opts.After and a
	// configurable page size via opts.PageSize.
	SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error)

	// ListTeamMembers retrieves a page of members of an organisation team in
	// the order GitHub returns them. An unknown team slug fails with an error
	// wrapping errors.ErrTeamNotFound.
	ListTeamMembers(ctx context.Context, org, team string, opts SearchOptions) (*TeamMemberPage, error)
}
