package chart

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth     = "100%"
	chartHeight    = "420px"
	heatmapHeight  = "260px"
	labelFontSize  = 10
	daysPerWeek    = 7
	dateLayout     = "2006-01-02"
	weekdayLabelsN = 7
)

var weekdayLabels = [weekdayLabelsN]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildLineChart constructs a themed trend line chart from a dataset.
func BuildLineChart(co *ChartOpts, ds Dataset, yAxisLabel string) (*charts.Line, error) {
	err := ds.Validate()
	if err != nil {
		return nil, err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithDataZoomOpts(co.DataZoom()...),
		charts.WithXAxisOpts(co.XAxis("")),
		charts.WithYAxisOpts(co.YAxis(yAxisLabel)),
		charts.WithLegendOpts(co.Legend()),
	)

	line.SetXAxis(ds.Labels)

	for i, s := range ds.Series {
		data := make([]opts.LineData, len(s.Data))
		for j, v := range s.Data {
			data[j] = opts.LineData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = co.SeriesColor(i)
		}

		line.AddSeries(s.Label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		)
	}

	return line, nil
}

// BuildBarChart constructs a themed stacked bar chart from a dataset.
func BuildBarChart(co *ChartOpts, ds Dataset, yAxisLabel string) (*charts.Bar, error) {
	err := ds.Validate()
	if err != nil {
		return nil, err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithDataZoomOpts(co.DataZoom()...),
		charts.WithXAxisOpts(co.XAxis("")),
		charts.WithYAxisOpts(co.YAxis(yAxisLabel)),
		charts.WithLegendOpts(co.Legend()),
	)

	bar.SetXAxis(ds.Labels)

	for i, s := range ds.Series {
		data := make([]opts.BarData, len(s.Data))
		for j, v := range s.Data {
			data[j] = opts.BarData{Value: v}
		}

		seriesOpts := []charts.SeriesOpts{}

		color := s.Color
		if color == "" {
			color = co.SeriesColor(i)
		}

		seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))

		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}

		bar.AddSeries(s.Label, data, seriesOpts...)
	}

	return bar, nil
}

// BuildCalendarHeatMap lays contiguous dates out on a week-by-weekday grid
// and colors each cell by its value. Dates and values must align; gaps were
// padded upstream so every cell in the window has a value.
func BuildCalendarHeatMap(co *ChartOpts, dates []string, values []float64) (*charts.HeatMap, error) {
	ds := Dataset{Labels: dates, Series: []SeriesDef{{Label: "heat", Data: values}}}

	err := ds.Validate()
	if err != nil {
		return nil, err
	}

	weeks, data, maxAbs := layoutCalendar(dates, values)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(chartWidth, heatmapHeight)),
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: weeks,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{FontSize: labelFontSize, Color: co.TextMutedColor()},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: weekdayLabels[:],
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{FontSize: labelFontSize, Color: co.TextMutedColor()},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(-maxAbs),
			Max:        float32(maxAbs),
			InRange:    &opts.VisualMapInRange{Color: co.HeatRamp()},
			Orient:     "horizontal",
			Left:       "center",
			Bottom:     "0%",
			TextStyle:  &opts.TextStyle{Color: co.TextMutedColor()},
		}),
	)

	hm.AddSeries("Daily", data)

	return hm, nil
}

// layoutCalendar maps each date to (week column, weekday row) cells. The
// column label is the Monday of that week.
func layoutCalendar(dates []string, values []float64) (weeks []string, data []opts.HeatMapData, maxAbs float64) {
	weekIndex := map[string]int{}

	for i, dateKey := range dates {
		day, err := time.Parse(dateLayout, dateKey)
		if err != nil {
			continue
		}

		monday := startOfWeek(day).Format(dateLayout)

		col, ok := weekIndex[monday]
		if !ok {
			col = len(weeks)
			weekIndex[monday] = col
			weeks = append(weeks, monday)
		}

		row := mondayBasedWeekday(day.Weekday())
		data = append(data, opts.HeatMapData{Value: []any{col, row, values[i]}})

		if abs := values[i]; abs < 0 {
			if -abs > maxAbs {
				maxAbs = -abs
			}
		} else if abs > maxAbs {
			maxAbs = abs
		}
	}

	if maxAbs == 0 {
		maxAbs = 1
	}

	return weeks, data, maxAbs
}

func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -mondayBasedWeekday(t.Weekday()))
}

func mondayBasedWeekday(d time.Weekday) int {
	return (int(d) + daysPerWeek - 1) % daysPerWeek
}
