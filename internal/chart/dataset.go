package chart

import (
	"errors"
	"fmt"
)

// ErrRaggedDataset indicates a series whose length differs from the labels.
var ErrRaggedDataset = errors.New("chart: series length does not match labels")

// SeriesDef is one named numeric series handed to the renderer.
type SeriesDef struct {
	Label string
	Data  []float64
	Color string // Optional, uses theme palette if empty.
	Stack string // Optional, stack grouping.
}

// Dataset is the renderer contract: labels plus equal-length series with no
// missing values. Missing days are already resolved to 0 or omitted upstream
// depending on the chart kind.
type Dataset struct {
	Labels []string
	Series []SeriesDef
}

// Validate checks the renderer guarantees before handing data to a chart.
func (d *Dataset) Validate() error {
	for _, s := range d.Series {
		if len(s.Data) != len(d.Labels) {
			return fmt.Errorf("%w: %q has %d points for %d labels",
				ErrRaggedDataset, s.Label, len(s.Data), len(d.Labels))
		}
	}

	return nil
}
