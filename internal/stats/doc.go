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

// Package stats aggregates GitHub pull request activity into per-user and
// per-team summaries over a date range.
//
// Service answers questions about a single user: how many pull requests
// they authored or reviewed within a range, and which ones. Authored counts
// cost a single search request. Reviewed statistics always paginate, because
// GitHub's search qualifiers cannot match on review timestamps; the service
// fetches candidates by update time and filters on review dates client-side.
//
// TeamService resolves organisation team membership and fans the per-user
// summaries out across a team, computing each member's share of the team's
// totals. Team summaries are always counts-only.
package stats
