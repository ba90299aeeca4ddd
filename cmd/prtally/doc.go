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

// Package main implements the prtally command-line interface.
// The tool reports pull request activity statistics (authored and
// reviewed counts, optionally full listings) for GitHub users and
// organisation teams over configurable calendar periods.
//
// The CLI supports:
//   - Single-user reports with pull request listings
//   - Team and multi-user reports as per-member counts tables
//   - Period selection via --date, --week, --month, --quarter, --half, --year
//   - NDJSON output for machine consumption and HTML charts for teams
//   - GitHub token authentication via flag or environment variable
//
// Usage:
//
//	prtally report --organisation <org> (--user <login> | --team <slug>) [flags]
//
// Example:
//
//	export GITHUB_ACCESS_TOKEN=your_token
//	prtally report --organisation acme --user octocat --quarter Q1 --year 2024
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication, rate limit, or team lookup error
//   - 3: Network error
//   - 4: Invalid selector or input error
package main
