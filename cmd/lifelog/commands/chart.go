package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lifelog/internal/aggregate"
	"lifelog/internal/chart"
	"lifelog/internal/model"
	"lifelog/internal/series"
	"lifelog/internal/tracker"
)

const defaultChartFile = "lifelog.html"

// NewChartCommand creates the `lifelog chart` command.
func NewChartCommand() *cobra.Command {
	var (
		smooth bool
		metric string
		theme  string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the trend dashboard as a standalone HTML page",
		Long: `Render the trend dashboard. Each domain gets a trend line of its per-day
aggregate, a calendar heatmap over the full window, and a stacked per-state
breakdown. Domains with no data in range are skipped with a notice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cfg, err := newTracker(cmd)
			if err != nil {
				return err
			}

			key, err := resolveRange(cmd, cfg)
			if err != nil {
				return err
			}

			stateMetric, err := parseStateMetric(metric)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("smooth") {
				smooth = cfg.Smooth
			}

			themeSpelling := theme
			if themeSpelling == "" {
				themeSpelling = cfg.Theme
			}

			page, rendered, err := buildDashboard(cmd, tr, key, smooth, stateMetric, chart.ParseTheme(themeSpelling))
			if err != nil {
				return err
			}

			if rendered == 0 {
				notice(cmd.OutOrStdout(), "no data in range %s; nothing to chart", key)

				return nil
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create chart file: %w", err)
			}
			defer f.Close()

			err = page.Render(f)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "dashboard written to %s", out)

			return nil
		},
	}

	cmd.Flags().StringP("range", "r", "", "range window: 7d, 30d, 90d, 365d, or all")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "apply a moving average to trend lines")
	cmd.Flags().StringVar(&metric, "metric", "count", "state breakdown metric: count or score")
	cmd.Flags().StringVar(&theme, "theme", "", "chart theme: dark or light")
	cmd.Flags().StringVarP(&out, "out", "o", defaultChartFile, "output HTML file")

	return cmd
}

// buildDashboard assembles one page with up to three sections per domain.
// Returns the number of domains that produced at least one chart.
func buildDashboard(cmd *cobra.Command, tr *tracker.Tracker, key series.RangeKey, smooth bool, metric aggregate.StateMetric, theme chart.Theme) (*chart.Page, int, error) {
	co := chart.NewChartOpts(theme)
	today := time.Now()

	page := chart.NewPage("Lifelog", fmt.Sprintf("Range: %s", key), theme)
	rendered := 0

	domains := tr.Domains()
	for i := range domains {
		domain := &domains[i]

		sections, err := domainSections(tr, co, domain, key, smooth, metric, today)
		if errors.Is(err, tracker.ErrNoData) {
			notice(cmd.OutOrStdout(), "%s: no data in range %s, skipping", domain.Name, key)

			continue
		}

		if err != nil {
			return nil, 0, fmt.Errorf("chart domain %q: %w", domain.Name, err)
		}

		page.Add(sections...)
		rendered++
	}

	return page, rendered, nil
}

func domainSections(tr *tracker.Tracker, co *chart.ChartOpts, domain *model.Domain, key series.RangeKey, smooth bool, metric aggregate.StateMetric, today time.Time) ([]chart.Section, error) {
	labels, values, err := tr.TrendSeries(domain, key, smooth, today)
	if err != nil {
		return nil, err
	}

	trendLabel := domain.Aggregation.String()
	if smooth {
		trendLabel += ", smoothed"
	}

	line, err := chart.BuildLineChart(co, chart.Dataset{
		Labels: labels,
		Series: []chart.SeriesDef{{Label: domain.Name, Data: values}},
	}, "score")
	if err != nil {
		return nil, err
	}

	heatDates, heatValues := tr.HeatmapSeries(domain, key, today)

	heatmap, err := chart.BuildCalendarHeatMap(co, heatDates, heatValues)
	if err != nil {
		return nil, err
	}

	breakdownDates, byState, err := tr.StateBreakdown(domain, key, metric, today)
	if err != nil {
		return nil, err
	}

	breakdown := chart.Dataset{Labels: breakdownDates}
	for _, state := range domain.States {
		breakdown.Series = append(breakdown.Series, chart.SeriesDef{
			Label: state.Name,
			Data:  byState[state.ID],
			Stack: "total",
		})
	}

	bar, err := chart.BuildBarChart(co, breakdown, metricLabel(metric))
	if err != nil {
		return nil, err
	}

	return []chart.Section{
		{Title: domain.Name, Subtitle: fmt.Sprintf("Daily trend (%s)", trendLabel), Chart: line},
		{Title: domain.Name, Subtitle: "Calendar heatmap", Chart: heatmap},
		{Title: domain.Name, Subtitle: fmt.Sprintf("State breakdown (%s)", metricLabel(metric)), Chart: bar},
	}, nil
}

func parseStateMetric(spelling string) (aggregate.StateMetric, error) {
	switch spelling {
	case "", "count":
		return aggregate.MetricCount, nil
	case "score":
		return aggregate.MetricScore, nil
	default:
		return aggregate.MetricCount, fmt.Errorf("unknown metric %q (expected count or score)", spelling)
	}
}

func metricLabel(metric aggregate.StateMetric) string {
	if metric == aggregate.MetricScore {
		return "score"
	}

	return "count"
}
