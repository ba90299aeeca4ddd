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

// Package github implements the GitHub GraphQL API client used for pull
// request search and team membership queries. It exposes a small Client
// interface so services can be tested against a mock, and a GraphQLClient
// implementation that handles authentication, pagination cursors, and error
// classification. The package performs no retries; failures surface to the
// caller unmodified apart from sentinel wrapping.
package github
