package view

import (
	"strconv"
	"time"

	"mini-livechart/pkg/chart"
)

// Export is the downloadable form of a view's current window.
type Export struct {
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	Colors    []string  `json:"colors"`
	Timestamp time.Time `json:"timestamp"`
}

// Export numbers points from 1 and colors them with an even palette.
func (v *View) Export(now time.Time) Export {
	samples := v.Samples()
	labels := make([]string, len(samples))
	for i := range samples {
		labels[i] = "Point " + strconv.Itoa(i+1)
	}
	return Export{
		Labels:    labels,
		Values:    samples.Ys(),
		Colors:    chart.Palette(len(samples), 0.6),
		Timestamp: now.UTC(),
	}
}
