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

package daterange

import (
	"fmt"
	"time"
)

// dateLayout is the calendar-day format used for range bounds in output
// and in GitHub search qualifiers.
const dateLayout = "2006-01-02"

// DateRange is an inclusive calendar-day interval. Both bounds are
// normalized to midnight UTC so ranges compare predictably regardless of
// the location of the times they were built from. Treat values as
// immutable once constructed.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New builds a DateRange from two calendar days, normalizing both to
// midnight UTC. It returns an error when the end day precedes the start day.
func New(start, end time.Time) (DateRange, error) {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("end date %s precedes start date %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the range.
// The comparison is inclusive on both sides and spans whole days, so any
// instant on the end day is still inside the range.
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// String renders the range as "YYYY-MM-DD..YYYY-MM-DD", the same shape
// GitHub search qualifiers use for date intervals.
func (r DateRange) String() string {
	return r.Start.Format(dateLayout) + ".." + r.End.Format(dateLayout)
}

// DateOnly truncates a time to its calendar day at midnight UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
