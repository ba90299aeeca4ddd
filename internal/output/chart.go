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
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/prtallyhq/prtally/internal/stats"
)

// RenderTeamChart writes a team summary as an HTML bar chart, one pair of
// bars (authored, reviewed) per member.
func RenderTeamChart(filename, title string, s *stats.TeamSummary) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: s.Range.String(),
		}),
	)

	logins := make([]string, 0, len(s.Members))
	authored := make([]opts.BarData, 0, len(s.Members))
	reviewed := make([]opts.BarData, 0, len(s.Members))
	for _, m := range s.Members {
		logins = append(logins, m.Login)
		authored = append(authored, opts.BarData{Value: m.AuthoredCount})
		reviewed = append(reviewed, opts.BarData{Value: m.ReviewedCount})
	}

	bar.SetXAxis(logins).
		AddSeries("Authored", authored).
		AddSeries("Reviewed", reviewed)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
