package chart

import (
	"fmt"
	"slices"
)

type PointStyleMode string

const (
	PointStyleNone      PointStyleMode = ""
	PointStyleThreshold PointStyleMode = "threshold"
	PointStyleLevels    PointStyleMode = "levels"
	PointStyleSize      PointStyleMode = "size"
)

var (
	colorNormal  = [2]string{RGBA(75, 192, 192, 0.8), RGBA(75, 192, 192, 1)}
	colorWarning = [2]string{RGBA(255, 205, 86, 0.8), RGBA(255, 205, 86, 1)}
	colorDanger  = [2]string{RGBA(255, 99, 132, 0.8), RGBA(255, 99, 132, 1)}
)

// PointStyle derives per-point colors or radii from each point's y value.
type PointStyle struct {
	Mode      PointStyleMode `yaml:"mode"`
	Threshold float64        `yaml:"threshold"`
	Warning   float64        `yaml:"warning"`
	Danger    float64        `yaml:"danger"`
	MinSize   float64        `yaml:"min_size"`
	MaxSize   float64        `yaml:"max_size"`
}

func (ps PointStyle) Validate() error {
	switch ps.Mode {
	case PointStyleNone, PointStyleThreshold:
	case PointStyleLevels:
		if ps.Warning > ps.Danger {
			return fmt.Errorf("point style: warning (%v) must be <= danger (%v)", ps.Warning, ps.Danger)
		}
	case PointStyleSize:
		if ps.MinSize < 0 || ps.MinSize > ps.MaxSize {
			return fmt.Errorf("point style: need 0 <= min_size (%v) <= max_size (%v)", ps.MinSize, ps.MaxSize)
		}
	default:
		return fmt.Errorf("point style: unknown mode %q", ps.Mode)
	}
	return nil
}

// Apply recomputes the per-point fields of ds from its current data.
func (ps PointStyle) Apply(ds *Dataset) {
	ds.PointBackgroundColor = nil
	ds.PointBorderColor = nil
	ds.PointBorderWidth = nil
	ds.PointRadius.PerPoint = nil

	n := len(ds.Data)
	switch ps.Mode {
	case PointStyleThreshold:
		ds.PointBackgroundColor = make([]string, n)
		ds.PointBorderColor = make([]string, n)
		for i, s := range ds.Data {
			c := colorDanger
			if s.Y >= ps.Threshold {
				c = colorNormal
			}
			ds.PointBackgroundColor[i], ds.PointBorderColor[i] = c[0], c[1]
		}
	case PointStyleLevels:
		ds.PointBackgroundColor = make([]string, n)
		ds.PointBorderColor = make([]string, n)
		ds.PointBorderWidth = make([]float64, n)
		for i, s := range ds.Data {
			c, w := colorNormal, 2.0
			switch {
			case s.Y >= ps.Danger:
				c, w = colorDanger, 4
			case s.Y >= ps.Warning:
				c = colorWarning
			}
			ds.PointBackgroundColor[i], ds.PointBorderColor[i] = c[0], c[1]
			ds.PointBorderWidth[i] = w
		}
	case PointStyleSize:
		if n == 0 {
			return
		}
		ys := ds.Data.Ys()
		lo, hi := slices.Min(ys), slices.Max(ys)
		ds.PointRadius.PerPoint = make([]float64, n)
		for i, y := range ys {
			normalized := 0.0
			if hi > lo {
				normalized = (y - lo) / (hi - lo)
			}
			ds.PointRadius.PerPoint[i] = ps.MinSize + normalized*(ps.MaxSize-ps.MinSize)
		}
	}
}
