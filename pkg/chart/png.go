package chart

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultPNGWidth  = 800
	DefaultPNGHeight = 400
)

// PNGSink renders line and scatter configs with go-chart. When a snapshot
// path is set, every Update rewrites that file atomically so readers never
// see a half written image.
type PNGSink struct {
	width     int
	height    int
	path      string
	logger    *slog.Logger
	mutex     sync.Mutex
	rendered  int
	destroyed bool
}

type PNGOption func(*PNGSink)

func WithSize(width, height int) PNGOption {
	return func(p *PNGSink) {
		if width > 0 {
			p.width = width
		}
		if height > 0 {
			p.height = height
		}
	}
}

func WithSnapshotPath(path string) PNGOption {
	return func(p *PNGSink) {
		p.path = path
	}
}

func WithPNGLogger(l *slog.Logger) PNGOption {
	return func(p *PNGSink) {
		p.logger = l
	}
}

func NewPNGSink(opts ...PNGOption) *PNGSink {
	p := &PNGSink{
		width:  DefaultPNGWidth,
		height: DefaultPNGHeight,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *PNGSink) Update(cfg *Config, mode UpdateMode) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.destroyed {
		return ErrSinkDestroyed
	}
	if p.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := p.Render(cfg, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(p.path, &buf); err != nil {
		return fmt.Errorf("write snapshot %q: %w", p.path, err)
	}
	p.rendered++
	p.logger.Debug("snapshot written", "path", p.path, "mode", mode, "bytes", buf.Len())
	return nil
}

func (p *PNGSink) Destroy() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.destroyed = true
	return nil
}

// Rendered returns how many snapshots have been written.
func (p *PNGSink) Rendered() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.rendered
}

// Render draws cfg as a PNG into w.
func (p *PNGSink) Render(cfg *Config, w io.Writer) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if cfg.Type != Line && cfg.Type != Scatter {
		return NewUnsupportedKindError(cfg.Type)
	}

	series := make([]gochart.Series, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		xs, ys := ds.Data.Xs(), ds.Data.Ys()
		// go-chart 不能处理只有一个点的范围, 补一个点
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		style, err := seriesStyle(cfg.Type, ds)
		if err != nil {
			return err
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}

	ch := gochart.Chart{
		Width:  p.width,
		Height: p.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 16, Right: 12, Bottom: 12},
		},
		Series: series,
	}
	if cfg.Options.Plugins.Title.Display {
		ch.Title = cfg.Options.Plugins.Title.Text
	}
	if x, ok := cfg.Options.Scales["x"]; ok && x.Title.Display {
		ch.XAxis.Name = x.Title.Text
	}
	if y, ok := cfg.Options.Scales["y"]; ok {
		if y.Title.Display {
			ch.YAxis.Name = y.Title.Text
		}
		if r := yRange(y, cfg.Data.Datasets); r != nil {
			ch.YAxis.Range = r
		}
	}
	if cfg.Options.Plugins.Legend.Display {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return ch.Render(gochart.PNG, w)
}

func seriesStyle(kind Kind, ds Dataset) (gochart.Style, error) {
	style := gochart.Style{StrokeWidth: 2}
	if ds.BorderColor != "" {
		c, err := ParseColor(ds.BorderColor)
		if err != nil {
			return style, err
		}
		style.StrokeColor = c
		style.DotColor = c
	}
	if ds.Fill && ds.BackgroundColor != "" {
		c, err := ParseColor(ds.BackgroundColor)
		if err != nil {
			return style, err
		}
		style.FillColor = c
	}
	if ds.BorderWidth > 0 {
		style.StrokeWidth = ds.BorderWidth
	}
	if r := ds.PointRadius.Fixed; r > 0 {
		style.DotWidth = r
	}
	if ds.PointRadius.PerPoint != nil {
		radius := ds.PointRadius
		style.DotWidthProvider = func(_, _ gochart.Range, index int, _, _ float64) float64 {
			return radius.At(index)
		}
	}
	if len(ds.PointBackgroundColor) > 0 {
		colors := make([]drawing.Color, len(ds.PointBackgroundColor))
		for i, pc := range ds.PointBackgroundColor {
			c, err := ParseColor(pc)
			if err != nil {
				return style, err
			}
			colors[i] = c
		}
		fallback := style.DotColor
		style.DotColorProvider = func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
			if index < len(colors) {
				return colors[index]
			}
			return fallback
		}
		if style.DotWidth == 0 {
			style.DotWidth = 3
		}
	}
	if kind == Scatter {
		style.StrokeWidth = gochart.Disabled
		if style.DotWidth == 0 {
			style.DotWidth = 3
		}
	}
	return style, nil
}

// yRange honours min/max/beginAtZero; unset bounds come from the data.
func yRange(s Scale, datasets []Dataset) *gochart.ContinuousRange {
	if s.Min == nil && s.Max == nil && !s.BeginAtZero {
		return nil
	}
	lo, hi := 0.0, 0.0
	first := true
	for _, ds := range datasets {
		for _, sm := range ds.Data {
			if first || sm.Y < lo {
				lo = sm.Y
			}
			if first || sm.Y > hi {
				hi = sm.Y
			}
			first = false
		}
	}
	if s.BeginAtZero && lo > 0 {
		lo = 0
	}
	if s.Min != nil {
		lo = *s.Min
	}
	if s.Max != nil {
		hi = *s.Max
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

// ParseColor reads CSS colors (#hex, rgb(), rgba(), basic names) with
// go-chart's drawing package. Input that drawing would silently turn into a
// zero color is rejected.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return drawing.Color{}, NewColorError(s, fmt.Errorf("bad hex length %d", len(hex)))
		}
		if strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
			return drawing.Color{}, NewColorError(s, fmt.Errorf("bad hex digits"))
		}
	case strings.HasPrefix(s, "rgba"):
		if !strings.HasSuffix(s, ")") || strings.Count(s, ",") != 3 {
			return drawing.Color{}, NewColorError(s, fmt.Errorf("want rgba(r, g, b, a)"))
		}
	case strings.HasPrefix(s, "rgb"):
		if !strings.HasSuffix(s, ")") || strings.Count(s, ",") != 2 {
			return drawing.Color{}, NewColorError(s, fmt.Errorf("want rgb(r, g, b)"))
		}
	default:
		if c := drawing.ColorFromKnown(s); c.IsZero() && !strings.EqualFold(s, "transparent") {
			return drawing.Color{}, NewColorError(s, fmt.Errorf("unknown color name"))
		}
	}
	return drawing.ParseColor(s), nil
}
