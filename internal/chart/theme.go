// Package chart builds the go-echarts visualizations for lifelog: trend
// lines, per-state breakdown bars, and calendar heatmaps, assembled into a
// single HTML dashboard page.
package chart

// Theme represents a color theme for the dashboard.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a config string to a Theme, defaulting to dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}

	return ThemeDark
}

// ThemeConfig holds theme-specific styling values.
type ThemeConfig struct {
	PageBackground  string
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// HeatRamp is the low-to-high color ramp for heatmap cells.
	HeatRamp []string

	// SeriesPalette cycles across domains.
	SeriesPalette []string
}

var darkTheme = ThemeConfig{
	PageBackground:  "#1c1917",
	ChartBackground: "#292524",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e",
	ChartText:       "#fafaf9",
	ChartTextMuted:  "#a8a29e",
	HeatRamp:        []string{"#3f3f46", "#0e4429", "#006d32", "#26a641", "#39d353"},
	SeriesPalette:   []string{"#60a5fa", "#f472b6", "#4ade80", "#facc15", "#c084fc", "#fb923c"},
}

var lightTheme = ThemeConfig{
	PageBackground:  "#fafaf9",
	ChartBackground: "#ffffff",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e",
	ChartText:       "#1c1917",
	ChartTextMuted:  "#57534e",
	HeatRamp:        []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	SeriesPalette:   []string{"#2563eb", "#db2777", "#16a34a", "#ca8a04", "#9333ea", "#ea580c"},
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}
