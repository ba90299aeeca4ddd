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

// Package testutil provides common test helpers for prtally.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// MockGitHub is an httptest server standing in for GitHub's GraphQL API.
// Handlers are dispatched per GraphQL operation shape: count searches,
// paginated searches, and team membership queries.
type MockGitHub struct {
	*httptest.Server

	// CountHandler answers counts-only search queries (first: 1).
	CountHandler func(searchQuery string) interface{}
	// SearchHandler answers paginated search queries; after is the cursor
	// or empty for the first page.
	SearchHandler func(searchQuery, after string) interface{}
	// TeamHandler answers team membership queries.
	TeamHandler func(org, team, after string) interface{}

	requests int32

	// LastAuthorization and LastUserAgent record the headers of the most
	// recent request.
	LastAuthorization string
	LastUserAgent     string
}

// graphqlRequest is the wire shape shurcooL/graphql posts.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// NewMockGitHub starts a GraphQL server and registers cleanup with t.
func NewMockGitHub(t *testing.T) *MockGitHub {
	t.Helper()

	m := &MockGitHub{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requests, 1)
		m.LastAuthorization = r.Header.Get("Authorization")
		m.LastUserAgent = r.Header.Get("User-Agent")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req graphqlRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var data interface{}
		switch {
		case strings.Contains(req.Query, "organization("):
			if m.TeamHandler != nil {
				data = m.TeamHandler(stringVar(req, "org"), stringVar(req, "team"), stringVar(req, "after"))
			}
		case strings.Contains(req.Query, "pageInfo"):
			if m.SearchHandler != nil {
				data = m.SearchHandler(stringVar(req, "query"), stringVar(req, "after"))
			}
		default:
			if m.CountHandler != nil {
				data = m.CountHandler(stringVar(req, "query"))
			}
		}
		if data == nil {
			http.Error(w, "no handler for query", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
	t.Cleanup(m.Server.Close)

	return m
}

// Requests returns how many GraphQL requests the server has received.
func (m *MockGitHub) Requests() int {
	return int(atomic.LoadInt32(&m.requests))
}

func stringVar(req graphqlRequest, name string) string {
	if v, ok := req.Variables[name].(string); ok {
		return v
	}
	return ""
}

// NewErrorServer creates a server that always returns the given status.
func NewErrorServer(t *testing.T, statusCode int, message string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(message))
	}))
	t.Cleanup(server.Close)
	return server
}

// CountResponse builds the data payload of a counts-only search.
func CountResponse(count int) interface{} {
	return map[string]interface{}{
		"search": map[string]interface{}{
			"issueCount": count,
		},
	}
}

// SearchResponse builds the data payload of a paginated search.
func SearchResponse(issueCount int, nodes []map[string]interface{}, hasNextPage bool, endCursor string) interface{} {
	return map[string]interface{}{
		"search": map[string]interface{}{
			"issueCount": issueCount,
			"pageInfo": map[string]interface{}{
				"hasNextPage": hasNextPage,
				"endCursor":   endCursor,
			},
			"nodes": nodes,
		},
	}
}

// PullRequestNode builds one search node. Reviews are optional.
func PullRequestNode(number int, title, author, repo string, createdAt time.Time, reviews ...map[string]interface{}) map[string]interface{} {
	if reviews == nil {
		reviews = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"number":    number,
		"title":     title,
		"url":       fmt.Sprintf("https://github.com/%s/pull/%d", repo, number),
		"state":     "OPEN",
		"merged":    false,
		"createdAt": createdAt.Format(time.RFC3339),
		"author": map[string]interface{}{
			"login": author,
		},
		"repository": map[string]interface{}{
			"nameWithOwner": repo,
		},
		"reviews": map[string]interface{}{
			"nodes": reviews,
		},
	}
}

// ReviewNode builds one review of a pull request node.
func ReviewNode(author string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		"createdAt": createdAt.Format(time.RFC3339),
		"author": map[string]interface{}{
			"login": author,
		},
	}
}

// TeamResponse builds the data payload of a team membership query.
// Members are login/name pairs; name may be empty.
func TeamResponse(members [][2]string, hasNextPage bool, endCursor string) interface{} {
	nodes := make([]map[string]interface{}, 0, len(members))
	for _, m := range members {
		nodes = append(nodes, map[string]interface{}{
			"login": m[0],
			"name":  m[1],
		})
	}
	return map[string]interface{}{
		"organization": map[string]interface{}{
			"team": map[string]interface{}{
				"members": map[string]interface{}{
					"pageInfo": map[string]interface{}{
						"hasNextPage": hasNextPage,
						"endCursor":   endCursor,
					},
					"nodes": nodes,
				},
			},
		},
	}
}

// TeamNotFoundResponse builds the payload GitHub returns for an unknown
// team slug: a null team object.
func TeamNotFoundResponse() interface{} {
	return map[string]interface{}{
		"organization": map[string]interface{}{
			"team": nil,
		},
	}
}
