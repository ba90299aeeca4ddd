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

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prtallyhq/prtally/internal/daterange"
	"github.com/prtallyhq/prtally/internal/github"
	"github.com/prtallyhq/prtally/internal/stats"
)

func testRange(t *testing.T) daterange.DateRange {
	t.Helper()
	r, err := daterange.New(
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to build range: %v", err)
	}
	return r
}

func testSummary(t *testing.T) *stats.Summary {
	t.Helper()
	return &stats.Summary{
		Login:         "octocat",
		Range:         testRange(t),
		AuthoredCount: 2,
		ReviewedCount: 1,
		Authored: []github.PullRequestSummary{
			{Number: 1, Title: "Add widget", Repository: "acme/widgets"},
			{Number: 2, Title: "Fix widget", Repository: "acme/widgets"},
		},
		Reviewed: []github.PullRequestSummary{
			{Number: 7, Title: "Refactor gadget", Repository: "acme/gadgets", Author: "hubot"},
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteSummary(testSummary(t)); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if w.Count() != 3 {
		t.Errorf("Count() = %d, want 3", w.Count())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d NDJSON lines, want 3", len(lines))
	}

	var first PullRequestRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if first.Kind != "authored" {
		t.Errorf("first record kind = %q, want %q", first.Kind, "authored")
	}
	if first.Login != "octocat" {
		t.Errorf("first record login = %q, want %q", first.Login, "octocat")
	}
	if first.Number != 1 {
		t.Errorf("first record number = %d, want 1", first.Number)
	}
	if first.Range != "2024-03-01..2024-03-31" {
		t.Errorf("first record range = %q", first.Range)
	}

	var last PullRequestRecord
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("last line is not valid JSON: %v", err)
	}
	if last.Kind != "reviewed" {
		t.Errorf("last record kind = %q, want %q", last.Kind, "reviewed")
	}
	if last.Number != 7 {
		t.Errorf("last record number = %d, want 7", last.Number)
	}
}

func TestWriteSummaryCountsOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	summary := &stats.Summary{Login: "octocat", Range: testRange(t), AuthoredCount: 5}
	if err := w.WriteSummary(summary); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if w.Count() != 0 {
		t.Errorf("Count() = %d, want 0 for counts-only summary", w.Count())
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWriteTeamSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	summary := &stats.TeamSummary{
		Team:  "platform",
		Range: testRange(t),
		Members: []stats.MemberStats{
			{Login: "octocat", AuthoredCount: 6, ReviewedCount: 3, AuthoredShare: 60},
			{Login: "hubot", AuthoredCount: 4, ReviewedCount: 2, AuthoredShare: 40},
		},
		TotalAuthored: 10,
		TotalReviewed: 5,
	}
	if err := w.WriteTeamSummary(summary); err != nil {
		t.Fatalf("WriteTeamSummary failed: %v", err)
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var record MemberRecord
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if record.Kind != "member" || record.Team != "platform" || record.Login != "octocat" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	if err := w.WriteSummary(testSummary(t)); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file failed: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 3 {
		t.Errorf("file has %d lines, want 3", got)
	}
}

func TestFileWriterBadPath(t *testing.T) {
	if _, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "out.ndjson")); err == nil {
		t.Fatal("expected error for nonexistent directory")
	}
}
