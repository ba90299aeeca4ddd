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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prtallyhq/prtally/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prtally",
		Short: "Report GitHub pull request activity for users and teams",
		Long: `PrTally reports pull request activity statistics from GitHub. It counts
and lists pull requests authored and reviewed by individual users or whole
teams within an organisation, over calendar periods like a month, quarter,
half-year or an arbitrary date.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newReportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
