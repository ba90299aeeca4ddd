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
	"strconv"
	"strings"
	"time"

	pterrors "github.com/prtallyhq/prtally/internal/errors"
)

// Month identifies a calendar month, January = 1.
type Month time.Month

// Quarter identifies a calendar quarter, Q1 = 1 (January through March).
type Quarter int

// Half identifies a calendar half-year, H1 = 1 (January through June).
type Half int

// ParseMonth parses a month from a numeric or textual representation.
// It accepts numeric strings ("3"), full month names ("March"), and
// case-insensitive three-letter abbreviations ("mar"). Unrecognized values
// fail with an error wrapping ErrInvalidMonth.
func ParseMonth(value string) (Month, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, fmt.Errorf("empty value: %w", pterrors.ErrInvalidMonth)
	}

	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %q out of range 1-12: %w", value, pterrors.ErrInvalidMonth)
		}
		return Month(n), nil
	}

	upper := strings.ToUpper(text)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToUpper(m.String())
		if upper == name || upper == name[:3] {
			return Month(m), nil
		}
	}

	return 0, fmt.Errorf("unrecognized month %q: %w", value, pterrors.ErrInvalidMonth)
}

// ParseQuarter parses a quarter from a "Qx" or bare numeric representation.
// Case and the leading "Q" are optional. Unrecognized values fail with an
// error wrapping ErrInvalidQuarter.
func ParseQuarter(value string) (Quarter, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, fmt.Errorf("empty value: %w", pterrors.ErrInvalidQuarter)
	}

	text = strings.TrimPrefix(strings.ToUpper(text), "Q")
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("unrecognized quarter %q: %w", value, pterrors.ErrInvalidQuarter)
	}
	return Quarter(n), nil
}

// ParseHalf parses a half-year from an "Hx" or bare numeric representation.
// Case and the leading "H" are optional. Unrecognized values fail with an
// error wrapping ErrInvalidHalf.
func ParseHalf(value string) (Half, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, fmt.Errorf("empty value: %w", pterrors.ErrInvalidHalf)
	}

	text = strings.TrimPrefix(strings.ToUpper(text), "H")
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > 2 {
		return 0, fmt.Errorf("unrecognized half %q: %w", value, pterrors.ErrInvalidHalf)
	}
	return Half(n), nil
}

// String returns the English month name.
func (m Month) String() string { return time.Month(m).String() }

// String returns the quarter in "Qx" form.
func (q Quarter) String() string { return fmt.Sprintf("Q%d", int(q)) }

// String returns the half-year in "Hx" form.
func (h Half) String() string { return fmt.Sprintf("H%d", int(h)) }

// QuarterOf returns the quarter containing the given day.
func QuarterOf(t time.Time) Quarter {
	return Quarter((int(t.Month())-1)/3 + 1)
}

// HalfOf returns the half-year containing the given day.
func HalfOf(t time.Time) Half {
	if t.Month() <= time.June {
		return 1
	}
	return 2
}
