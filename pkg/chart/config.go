// Package chart describes the configuration object handed to a render sink
// and the sinks that consume it. The JSON shape follows chart.js so the
// object can be passed to a browser chart unmodified.
package chart

import (
	"bytes"
	"encoding/json"

	"mini-livechart/pkg/model"
)

type Kind string

const (
	Line      Kind = "line"
	Bar       Kind = "bar"
	Pie       Kind = "pie"
	Doughnut  Kind = "doughnut"
	Radar     Kind = "radar"
	PolarArea Kind = "polarArea"
	Scatter   Kind = "scatter"
	Bubble    Kind = "bubble"
)

func (k Kind) Valid() bool {
	switch k {
	case Line, Bar, Pie, Doughnut, Radar, PolarArea, Scatter, Bubble:
		return true
	}
	return false
}

// Config is the full object a sink receives on every update.
type Config struct {
	Type    Kind    `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string        `json:"label"`
	Data            model.Samples `json:"data"`
	BorderColor     string        `json:"borderColor,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	BorderWidth     float64       `json:"borderWidth,omitempty"`
	Tension         float64       `json:"tension,omitempty"`
	Fill            bool          `json:"fill"`
	PointRadius     Radius        `json:"pointRadius"`

	// Per-point values computed from PointStyle on every update.
	PointBackgroundColor []string  `json:"pointBackgroundColor,omitempty"`
	PointBorderColor     []string  `json:"pointBorderColor,omitempty"`
	PointBorderWidth     []float64 `json:"pointBorderWidth,omitempty"`

	PointStyle PointStyle `json:"-"`
}

type Options struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio *bool            `json:"maintainAspectRatio,omitempty"`
	Animation           *Animation       `json:"animation,omitempty"`
	Plugins             Plugins          `json:"plugins"`
	Scales              map[string]Scale `json:"scales,omitempty"`
}

type Animation struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing,omitempty"`
	Delay    int    `json:"delay,omitempty"`
}

type Plugins struct {
	Title  Title  `json:"title"`
	Legend Legend `json:"legend"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type Scale struct {
	Type        string   `json:"type,omitempty"`
	BeginAtZero bool     `json:"beginAtZero,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Title       Title    `json:"title"`
}

// Radius is either one radius for every point or one per point. It encodes
// as a JSON number or array accordingly.
type Radius struct {
	Fixed    float64
	PerPoint []float64
}

func (r Radius) At(i int) float64 {
	if i >= 0 && i < len(r.PerPoint) {
		return r.PerPoint[i]
	}
	return r.Fixed
}

func (r Radius) MarshalJSON() ([]byte, error) {
	if r.PerPoint != nil {
		return json.Marshal(r.PerPoint)
	}
	return json.Marshal(r.Fixed)
}

func (r *Radius) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		r.Fixed = 0
		return json.Unmarshal(b, &r.PerPoint)
	}
	r.PerPoint = nil
	return json.Unmarshal(b, &r.Fixed)
}

// Clone returns a deep copy; callers outside the owning view only ever see
// clones.
func (c *Config) Clone() *Config {
	out := *c
	out.Data.Labels = append([]string(nil), c.Data.Labels...)
	out.Data.Datasets = make([]Dataset, len(c.Data.Datasets))
	for i, ds := range c.Data.Datasets {
		ds.Data = ds.Data.Clone()
		ds.PointRadius.PerPoint = append([]float64(nil), ds.PointRadius.PerPoint...)
		ds.PointBackgroundColor = append([]string(nil), ds.PointBackgroundColor...)
		ds.PointBorderColor = append([]string(nil), ds.PointBorderColor...)
		ds.PointBorderWidth = append([]float64(nil), ds.PointBorderWidth...)
		out.Data.Datasets[i] = ds
	}
	if c.Options.MaintainAspectRatio != nil {
		v := *c.Options.MaintainAspectRatio
		out.Options.MaintainAspectRatio = &v
	}
	if c.Options.Animation != nil {
		a := *c.Options.Animation
		out.Options.Animation = &a
	}
	if c.Options.Scales != nil {
		out.Options.Scales = make(map[string]Scale, len(c.Options.Scales))
		for k, s := range c.Options.Scales {
			out.Options.Scales[k] = s
		}
	}
	return &out
}

func Float(v float64) *float64 {
	return &v
}
