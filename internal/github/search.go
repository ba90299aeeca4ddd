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
	"fmt"
	"strings"

	"github.com/prtallyhq/prtally/internal/daterange"
)

// BuildAuthoredQuery constructs a GitHub search query for pull requests
// created by an author within an organisation and date range. The created
// qualifier uses second-precision UTC bounds covering the whole inclusive
// range.
func BuildAuthoredQuery(author, org string, r daterange.DateRange, mergedOnly bool) string {
	parts := []string{
		fmt.Sprintf("author:%s", author),
		fmt.Sprintf("org:%s", org),
		"is:pr",
		fmt.Sprintf("created:%s", searchInterval(r)),
	}
	if mergedOnly {
		parts = append(parts, "is:merged")
	}
	return strings.Join(parts, " ")
}

// BuildReviewedQuery constructs a GitHub search query for pull requests
// reviewed by a user within an organisation and date range. Search cannot
// qualify on review timestamps, so the query scopes by updated time and the
// caller filters review dates client-side. With excludeSelfAuthored the
// reviewer's own pull requests are dropped server-side as well.
func BuildReviewedQuery(reviewer, org string, r daterange.DateRange, excludeSelfAuthored bool) string {
	parts := []string{
		fmt.Sprintf("reviewed-by:%s", reviewer),
		fmt.Sprintf("org:%s", org),
		"is:pr",
		fmt.Sprintf("updated:%s", searchInterval(r)),
	}
	if excludeSelfAuthored {
		parts = append(parts, fmt.Sprintf("-author:%s", reviewer))
	}
	return strings.Join(parts, " ")
}

// searchInterval renders an inclusive date range as a search qualifier
// interval spanning from the first instant of the start day to the last
// second of the end day.
func searchInterval(r daterange.DateRange) string {
	return fmt.Sprintf("%sT00:00:00Z..%sT23:59:59Z",
		r.Start.Format("2006-01-02"),
		r.End.Format("2006-01-02"))
}
