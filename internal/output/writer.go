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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/prtallyhq/prtally/internal/github"
	"github.com/prtallyhq/prtally/internal/stats"
)

// PullRequestRecord is one NDJSON line of a pull request listing. Kind is
// "authored" or "reviewed"; Login names the user the record belongs to.
type PullRequestRecord struct {
	Kind  string `json:"kind"`
	Login string `json:"login"`
	Range string `json:"range"`
	github.PullRequestSummary
}

// MemberRecord is one NDJSON line of a team summary.
type MemberRecord struct {
	Kind  string `json:"kind"`
	Team  string `json:"team,omitempty"`
	Range string `json:"range"`
	stats.MemberStats
}

// Writer streams summaries as NDJSON, one record per line. Records are
// flushed as they are written so large listings never accumulate in memory.
type Writer struct {
	mu        sync.Mutex
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates an NDJSON writer on an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		encoder: json.NewEncoder(w),
	}
}

// NewFileWriter creates an NDJSON writer on a newly created file.
// The caller must call Close when done.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		encoder:   json.NewEncoder(file),
		closeFunc: file.Close,
	}, nil
}

// WriteSummary writes a user's pull request lists, authored records first.
// Counts-only summaries carry no lists and produce no records.
func (w *Writer) WriteSummary(s *stats.Summary) error {
	for _, pr := range s.Authored {
		if err := w.write(PullRequestRecord{
			Kind:               "authored",
			Login:              s.Login,
			Range:              s.Range.String(),
			PullRequestSummary: pr,
		}); err != nil {
			return err
		}
	}
	for _, pr := range s.Reviewed {
		if err := w.write(PullRequestRecord{
			Kind:               "reviewed",
			Login:              s.Login,
			Range:              s.Range.String(),
			PullRequestSummary: pr,
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteTeamSummary writes one record per team member.
func (w *Writer) WriteTeamSummary(s *stats.TeamSummary) error {
	for _, m := range s.Members {
		if err := w.write(MemberRecord{
			Kind:        "member",
			Team:        s.Team,
			Range:       s.Range.String(),
			MemberStats: m,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(record interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
