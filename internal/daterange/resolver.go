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
	"strings"
	"time"

	pterrors "github.com/prtallyhq/prtally/internal/errors"
)

// Selector carries the period selection supplied by the caller. At most one
// of Date, Week, Month, Quarter, or Half may be set; Year may accompany
// Month, Quarter, or Half (or stand alone for a full-year range). An empty
// Selector resolves to the current quarter.
type Selector struct {
	Date    *time.Time
	Week    bool
	Month   *Month
	Quarter *Quarter
	Half    *Half
	Year    *int
}

// Resolver turns period selectors into concrete inclusive date ranges
// relative to a fixed reference date. The reference date is injected rather
// than read from the system clock so resolution stays deterministic.
type Resolver struct {
	today time.Time
}

// NewResolver creates a Resolver that treats the given day as "today".
func NewResolver(today time.Time) *Resolver {
	return &Resolver{today: DateOnly(today)}
}

// Today returns the resolver's reference date.
func (r *Resolver) Today() time.Time { return r.today }

// Resolve computes the date range described by the selector. Conflicting
// period shapes fail with an error wrapping ErrConflictingSelectors; invalid
// or future periods fail with the corresponding sentinel.
func (r *Resolver) Resolve(sel Selector) (DateRange, error) {
	if err := r.validate(sel); err != nil {
		return DateRange{}, err
	}

	switch {
	case sel.Date != nil:
		return r.ForDate(*sel.Date)
	case sel.Week:
		return r.ForWeek(), nil
	}

	if sel.Year == nil {
		switch {
		case sel.Month != nil:
			return r.ForMonth(*sel.Month), nil
		case sel.Quarter != nil:
			return r.ForQuarter(*sel.Quarter), nil
		case sel.Half != nil:
			return r.ForHalf(*sel.Half), nil
		}
		// Nothing selected: current quarter.
		return r.ForQuarter(QuarterOf(r.today)), nil
	}

	switch {
	case sel.Month != nil:
		return r.ForMonthInYear(*sel.Month, *sel.Year)
	case sel.Quarter != nil:
		return r.ForQuarterInYear(*sel.Quarter, *sel.Year)
	case sel.Half != nil:
		return r.ForHalfInYear(*sel.Half, *sel.Year)
	}
	return r.ForYear(*sel.Year)
}

// validate rejects selector combinations that describe more than one
// period shape.
func (r *Resolver) validate(sel Selector) error {
	var shapes []string
	if sel.Date != nil {
		shapes = append(shapes, "date")
	}
	if sel.Week {
		shapes = append(shapes, "week")
	}
	if sel.Month != nil {
		shapes = append(shapes, "month")
	}
	if sel.Quarter != nil {
		shapes = append(shapes, "quarter")
	}
	if sel.Half != nil {
		shapes = append(shapes, "half")
	}

	if len(shapes) > 1 {
		return fmt.Errorf("cannot combine %s: %w", strings.Join(shapes, " with "), pterrors.ErrConflictingSelectors)
	}
	if sel.Year != nil && (sel.Date != nil || sel.Week) {
		return fmt.Errorf("cannot combine %s with year: %w", shapes[0], pterrors.ErrConflictingSelectors)
	}
	return nil
}

// ForDate returns the single-day range for the given calendar day.
func (r *Resolver) ForDate(day time.Time) (DateRange, error) {
	day = DateOnly(day)
	if day.After(r.today) {
		return DateRange{}, fmt.Errorf("date %s: %w", day.Format(dateLayout), pterrors.ErrFuturePeriod)
	}
	return DateRange{Start: day, End: day}, nil
}

// ForWeek returns the seven inclusive days ending on the reference date.
func (r *Resolver) ForWeek() DateRange {
	return DateRange{Start: r.today.AddDate(0, 0, -6), End: r.today}
}

// ForMonth returns the most recent occurrence of the month: the current
// year when the month has started, otherwise the previous year. A month
// still in progress ends on the reference date.
func (r *Resolver) ForMonth(month Month) DateRange {
	year := relativeYear(int(month), int(r.today.Month()), r.today.Year())
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := endOfMonth(year, time.Month(month))
	if year == r.today.Year() && time.Month(month) == r.today.Month() {
		end = r.today
	}
	return DateRange{Start: start, End: end}
}

// ForMonthInYear returns the full calendar span of the month within the
// given year. Future months are rejected.
func (r *Resolver) ForMonthInYear(month Month, year int) (DateRange, error) {
	if year > r.today.Year() || (year == r.today.Year() && time.Month(month) > r.today.Month()) {
		return DateRange{}, fmt.Errorf("month %s %d: %w", month, year, pterrors.ErrFuturePeriod)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: endOfMonth(year, time.Month(month))}, nil
}

// ForQuarter returns the most recent occurrence of the quarter, ending on
// the reference date when the quarter is still in progress.
func (r *Resolver) ForQuarter(quarter Quarter) DateRange {
	current := QuarterOf(r.today)
	year := relativeYear(int(quarter), int(current), r.today.Year())
	start := quarterStart(quarter, year)
	end := endOfMonth(year, start.Month()+2)
	if year == r.today.Year() && quarter == current {
		end = r.today
	}
	return DateRange{Start: start, End: end}
}

// ForQuarterInYear returns the full three-month span of the quarter within
// the given year. Future quarters are rejected.
func (r *Resolver) ForQuarterInYear(quarter Quarter, year int) (DateRange, error) {
	if year > r.today.Year() || (year == r.today.Year() && quarter > QuarterOf(r.today)) {
		return DateRange{}, fmt.Errorf("quarter %s %d: %w", quarter, year, pterrors.ErrFuturePeriod)
	}
	start := quarterStart(quarter, year)
	return DateRange{Start: start, End: endOfMonth(year, start.Month()+2)}, nil
}

// ForHalf returns the most recent occurrence of the half-year, ending on
// the reference date when the half is still in progress.
func (r *Resolver) ForHalf(half Half) DateRange {
	current := HalfOf(r.today)
	year := relativeYear(int(half), int(current), r.today.Year())
	start := halfStart(half, year)
	end := endOfMonth(year, start.Month()+5)
	if year == r.today.Year() && half == current {
		end = r.today
	}
	return DateRange{Start: start, End: end}
}

// ForHalfInYear returns the full six-month span of the half within the
// given year. Future halves are rejected.
func (r *Resolver) ForHalfInYear(half Half, year int) (DateRange, error) {
	if year > r.today.Year() || (year == r.today.Year() && half > HalfOf(r.today)) {
		return DateRange{}, fmt.Errorf("half %s %d: %w", half, year, pterrors.ErrFuturePeriod)
	}
	start := halfStart(half, year)
	return DateRange{Start: start, End: endOfMonth(year, start.Month()+5)}, nil
}

// ForYear returns January 1 through December 31 of the given year, or
// through the reference date for the current year. Future years are rejected.
func (r *Resolver) ForYear(year int) (DateRange, error) {
	if year > r.today.Year() {
		return DateRange{}, fmt.Errorf("year %d: %w", year, pterrors.ErrFuturePeriod)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if year == r.today.Year() {
		end = r.today
	}
	return DateRange{Start: start, End: end}, nil
}

// relativeYear picks the year of the most recent occurrence of a period:
// periods that have not started yet this year roll back to the previous one.
func relativeYear(target, current, year int) int {
	if target > current {
		return year - 1
	}
	return year
}

func quarterStart(quarter Quarter, year int) time.Time {
	month := time.Month((int(quarter)-1)*3 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func halfStart(half Half, year int) time.Time {
	month := time.January
	if half == 2 {
		month = time.July
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last day of the month. Day zero of the following
// month normalizes to it, which also handles month values past December.
func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
