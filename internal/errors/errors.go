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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates GitHub authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrTeamNotFound indicates the requested team slug does not exist in the organisation.
	// Maps to exit code 2.
	ErrTeamNotFound = errors.New("team not found")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates a GraphQL response was missing fields
	// the application relies on. Maps to exit code 1.
	ErrMalformedResponse = errors.New("malformed github response")

	// ErrConflictingSelectors indicates more than one period selector was
	// supplied at once. Maps to exit code 4.
	ErrConflictingSelectors = errors.New("conflicting period selectors")

	// ErrInvalidMonth indicates a month value could not be parsed.
	// Maps to exit code 4.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidQuarter indicates a quarter value could not be parsed.
	// Maps to exit code 4.
	ErrInvalidQuarter = errors.New("invalid quarter")

	// ErrInvalidHalf indicates a half-year value could not be parsed.
	// Maps to exit code 4.
	ErrInvalidHalf = errors.New("invalid half")

	// ErrFuturePeriod indicates a requested period lies beyond the reference date.
	// Maps to exit code 4.
	ErrFuturePeriod = errors.New("period is in the future")
)
