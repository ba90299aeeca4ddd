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
	"errors"
	"testing"
	"time"

	pterrors "github.com/prtallyhq/prtally/internal/errors"
)

// reference date used throughout: Thursday 2024-08-15 (Q3, H2).
var today = time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthPtr(m Month) *Month       { return &m }
func quarterPtr(q Quarter) *Quarter { return &q }
func halfPtr(h Half) *Half          { return &h }
func intPtr(n int) *int             { return &n }
func timePtr(t time.Time) *time.Time {
	return &t
}

func TestResolve(t *testing.T) {
	resolver := NewResolver(today)

	tests := []struct {
		name      string
		sel       Selector
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "empty selector defaults to current quarter",
			sel:       Selector{},
			wantStart: day(2024, time.July, 1),
			wantEnd:   day(2024, time.August, 15),
		},
		{
			name:      "specific date",
			sel:       Selector{Date: timePtr(day(2024, time.March, 3))},
			wantStart: day(2024, time.March, 3),
			wantEnd:   day(2024, time.March, 3),
		},
		{
			name:      "week is seven days ending today",
			sel:       Selector{Week: true},
			wantStart: day(2024, time.August, 9),
			wantEnd:   day(2024, time.August, 15),
		},
		{
			name:      "past month without year uses current year",
			sel:       Selector{Month: monthPtr(3)},
			wantStart: day(2024, time.March, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "future month without year rolls back a year",
			sel:       Selector{Month: monthPtr(12)},
			wantStart: day(2023, time.December, 1),
			wantEnd:   day(2023, time.December, 31),
		},
		{
			name:      "current month ends today",
			sel:       Selector{Month: monthPtr(8)},
			wantStart: day(2024, time.August, 1),
			wantEnd:   day(2024, time.August, 15),
		},
		{
			name:      "month with explicit year spans the whole month",
			sel:       Selector{Month: monthPtr(2), Year: intPtr(2024)},
			wantStart: day(2024, time.February, 1),
			wantEnd:   day(2024, time.February, 29),
		},
		{
			name:      "quarter with explicit year",
			sel:       Selector{Quarter: quarterPtr(1), Year: intPtr(2024)},
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "future quarter without year rolls back a year",
			sel:       Selector{Quarter: quarterPtr(4)},
			wantStart: day(2023, time.October, 1),
			wantEnd:   day(2023, time.December, 31),
		},
		{
			name:      "current half ends today",
			sel:       Selector{Half: halfPtr(2)},
			wantStart: day(2024, time.July, 1),
			wantEnd:   day(2024, time.August, 15),
		},
		{
			name:      "half with explicit year",
			sel:       Selector{Half: halfPtr(1), Year: intPtr(2023)},
			wantStart: day(2023, time.January, 1),
			wantEnd:   day(2023, time.June, 30),
		},
		{
			name:      "past year spans the whole year",
			sel:       Selector{Year: intPtr(2023)},
			wantStart: day(2023, time.January, 1),
			wantEnd:   day(2023, time.December, 31),
		},
		{
			name:      "current year ends today",
			sel:       Selector{Year: intPtr(2024)},
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.August, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.sel)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("Resolve() = %s, want %s..%s",
					got, tt.wantStart.Format("2006-01-02"), tt.wantEnd.Format("2006-01-02"))
			}
			if got.End.Before(got.Start) {
				t.Errorf("Resolve() produced inverted range %s", got)
			}
		})
	}
}

func TestResolveConflictingSelectors(t *testing.T) {
	resolver := NewResolver(today)

	tests := []struct {
		name string
		sel  Selector
	}{
		{
			name: "quarter and month",
			sel:  Selector{Quarter: quarterPtr(1), Month: monthPtr(3)},
		},
		{
			name: "month and half",
			sel:  Selector{Month: monthPtr(3), Half: halfPtr(1)},
		},
		{
			name: "date and week",
			sel:  Selector{Date: timePtr(day(2024, time.March, 3)), Week: true},
		},
		{
			name: "date and year",
			sel:  Selector{Date: timePtr(day(2024, time.March, 3)), Year: intPtr(2024)},
		},
		{
			name: "week and year",
			sel:  Selector{Week: true, Year: intPtr(2024)},
		},
		{
			name: "week and quarter",
			sel:  Selector{Week: true, Quarter: quarterPtr(2)},
		},
		{
			name: "all period shapes at once",
			sel: Selector{
				Date:    timePtr(day(2024, time.March, 3)),
				Week:    true,
				Month:   monthPtr(1),
				Quarter: quarterPtr(1),
				Half:    halfPtr(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.sel)
			if !errors.Is(err, pterrors.ErrConflictingSelectors) {
				t.Errorf("Resolve() error = %v, want ErrConflictingSelectors", err)
			}
		})
	}
}

func TestResolveFuturePeriods(t *testing.T) {
	resolver := NewResolver(today)

	tests := []struct {
		name string
		sel  Selector
	}{
		{name: "future date", sel: Selector{Date: timePtr(day(2024, time.August, 16))}},
		{name: "future month in current year", sel: Selector{Month: monthPtr(12), Year: intPtr(2024)}},
		{name: "future quarter in current year", sel: Selector{Quarter: quarterPtr(4), Year: intPtr(2024)}},
		{name: "future year", sel: Selector{Year: intPtr(2025)}},
		{name: "future half in future year", sel: Selector{Half: halfPtr(1), Year: intPtr(2025)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.sel)
			if !errors.Is(err, pterrors.ErrFuturePeriod) {
				t.Errorf("Resolve() error = %v, want ErrFuturePeriod", err)
			}
		})
	}
}

func TestForWeekAlwaysSevenDays(t *testing.T) {
	// Includes a window crossing a month and a year boundary.
	for _, ref := range []time.Time{
		day(2024, time.August, 15),
		day(2024, time.March, 3),
		day(2024, time.January, 2),
		day(2024, time.February, 29),
	} {
		r := NewResolver(ref).ForWeek()
		if days := int(r.End.Sub(r.Start).Hours()/24) + 1; days != 7 {
			t.Errorf("ForWeek() with today=%s spans %d days, want 7", ref.Format("2006-01-02"), days)
		}
		if !r.End.Equal(ref) {
			t.Errorf("ForWeek() with today=%s ends %s, want the reference date", ref.Format("2006-01-02"), r.End)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r, err := New(day(2024, time.January, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "start of range", at: day(2024, time.January, 1), want: true},
		{name: "midnight on end day", at: day(2024, time.March, 31), want: true},
		{name: "late on end day", at: time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), want: true},
		{name: "day after", at: day(2024, time.April, 1), want: false},
		{name: "day before", at: day(2023, time.December, 31), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestNewRejectsInvertedRange(t *testing.T) {
	if _, err := New(day(2024, time.March, 31), day(2024, time.January, 1)); err == nil {
		t.Error("New() accepted an inverted range")
	}
}
