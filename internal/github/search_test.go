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
	"testing"
	"time"

	"github.com/prtallyhq/prtally/internal/daterange"
)

func q1_2024(t *testing.T) daterange.DateRange {
	t.Helper()
	r, err := daterange.New(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to build range: %v", err)
	}
	return r
}

func TestBuildAuthoredQuery(t *testing.T) {
	tests := []struct {
		name       string
		author     string
		org        string
		mergedOnly bool
		expected   string
	}{
		{
			name:     "basic authored query",
			author:   "octocat",
			org:      "github",
			expected: "author:octocat org:github is:pr created:2024-01-01T00:00:00Z..2024-03-31T23:59:59Z",
		},
		{
			name:       "merged only",
			author:     "octocat",
			org:        "github",
			mergedOnly: true,
			expected:   "author:octocat org:github is:pr created:2024-01-01T00:00:00Z..2024-03-31T23:59:59Z is:merged",
		},
		{
			name:     "org with dash",
			author:   "hubot",
			org:      "my-org",
			expected: "author:hubot org:my-org is:pr created:2024-01-01T00:00:00Z..2024-03-31T23:59:59Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildAuthoredQuery(tt.author, tt.org, q1_2024(t), tt.mergedOnly)
			if result != tt.expected {
				t.Errorf("BuildAuthoredQuery() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestBuildReviewedQuery(t *testing.T) {
	tests := []struct {
		name        string
		reviewer    string
		org         string
		excludeSelf bool
		expected    string
	}{
		{
			name:     "basic reviewed query",
			reviewer: "octocat",
			org:      "github",
			expected: "reviewed-by:octocat org:github is:pr updated:2024-01-01T00:00:00Z..2024-03-31T23:59:59Z",
		},
		{
			name:        "excluding self-authored",
			reviewer:    "octocat",
			org:         "github",
			excludeSelf: true,
			expected:    "reviewed-by:octocat org:github is:pr updated:2024-01-01T00:00:00Z..2024-03-31T23:59:59Z -author:octocat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildReviewedQuery(tt.reviewer, tt.org, q1_2024(t), tt.excludeSelf)
			if result != tt.expected {
				t.Errorf("BuildReviewedQuery() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSearchIntervalSingleDay(t *testing.T) {
	day := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	r, err := daterange.New(day, day)
	if err != nil {
		t.Fatalf("failed to build range: %v", err)
	}
	want := "2024-03-03T00:00:00Z..2024-03-03T23:59:59Z"
	if got := searchInterval(r); got != want {
		t.Errorf("searchInterval() = %q, want %q", got, want)
	}
}
