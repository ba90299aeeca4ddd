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

// Package daterange resolves calendar period selectors (a specific date,
// the trailing week, a month, quarter, half-year, or full year) into
// concrete inclusive date ranges. Resolution is a pure function of the
// selector and an injected reference date, which keeps period arithmetic
// deterministic and directly testable.
package daterange
