// Package view ties one bounded live series to its feed and render sink.
//
// A View exclusively owns its series and timer. Ticks mutate the series
// under the view lock and push the new window to the sink with
// chart.ModeNone so the scroll does not replay an animation. Dispose always
// stops the feed before the sink is destroyed, so no tick can reach a
// released sink.
package view

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"mini-livechart/pkg/chart"
	"mini-livechart/pkg/feed"
	"mini-livechart/pkg/model"
	"mini-livechart/pkg/series"
)

// SeedHalf prefills the window with half its capacity.
const SeedHalf = -1

type Options struct {
	Key   model.SeriesKey
	Title string
	Label string
	Color string
	// Capacity 0 means series.DefaultCapacity.
	Capacity int
	// Seed is the number of samples the window starts with, or SeedHalf.
	Seed      int
	Interval  time.Duration
	Generator series.Generator
	// SeedGenerator fills the initial window; Generator is used when nil.
	SeedGenerator series.Generator
	PointStyle    chart.PointStyle
	Sink          chart.Sink
	Clock         clockwork.Clock
	Logger        *slog.Logger
}

type View struct {
	key    model.SeriesKey
	sink   chart.Sink
	feed   *feed.Feed
	logger *slog.Logger

	// control serializes lifecycle calls; mutex guards the window and is
	// taken by every tick. Nothing calls into feed while holding mutex.
	control  sync.Mutex
	mutex    sync.Mutex
	series   *series.Bounded
	cfg      *chart.Config
	disposed bool
	sinkErrs int
}

// Status is a point-in-time copy of a view for callers outside the view.
type Status struct {
	Name     string        `json:"name"`
	Labels   model.Labels  `json:"labels,omitempty"`
	State    string        `json:"state"`
	Interval time.Duration `json:"-"`
	// IntervalMS mirrors Interval for JSON clients.
	IntervalMS int64         `json:"interval_ms"`
	Capacity   int           `json:"capacity"`
	Length     int           `json:"length"`
	Ticks      uint64        `json:"ticks"`
	Last       *model.Sample `json:"last,omitempty"`
	Config     *chart.Config `json:"config"`
}

func New(opts Options) (*View, error) {
	if opts.Sink == nil {
		return nil, ErrNilSink
	}
	if opts.Generator == nil {
		return nil, series.ErrNilGenerator
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Capacity == 0 {
		opts.Capacity = series.DefaultCapacity
	}
	if opts.Seed == SeedHalf {
		opts.Seed = opts.Capacity / 2
	}
	seedGen := opts.SeedGenerator
	if seedGen == nil {
		seedGen = opts.Generator
	}

	b, err := series.NewBounded(opts.Capacity, opts.Generator, series.Seed(opts.Seed, seedGen)...)
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", opts.Key.Name, err)
	}

	v := &View{
		key:    opts.Key,
		sink:   opts.Sink,
		logger: opts.Logger.With("view", opts.Key.Name),
		series: b,
	}
	v.cfg = chart.Realtime(opts.Title, opts.Label, opts.Color, b.Samples())
	v.cfg.Data.Datasets[0].PointStyle = opts.PointStyle
	opts.PointStyle.Apply(&v.cfg.Data.Datasets[0])

	v.feed, err = feed.New(opts.Interval, v.tick,
		feed.WithClock(opts.Clock), feed.WithLogger(v.logger))
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", opts.Key.Name, err)
	}

	if err := v.sink.Update(v.cfg, chart.ModeDefault); err != nil {
		v.logger.Warn("initial render failed", "error", err)
	}
	return v, nil
}

func (v *View) Key() model.SeriesKey {
	return v.key
}

func (v *View) Name() string {
	return v.key.Name
}

func (v *View) Start() error {
	v.control.Lock()
	defer v.control.Unlock()
	if v.isDisposed() {
		return ErrDisposed
	}
	if v.feed.Start() {
		v.logger.Info("realtime started", "interval", v.feed.Interval())
	}
	return nil
}

// Stop is a no-op on a stopped or disposed view.
func (v *View) Stop() {
	v.feed.Stop()
}

func (v *View) Toggle() (feed.State, error) {
	v.control.Lock()
	defer v.control.Unlock()
	if v.isDisposed() {
		return feed.Stopped, ErrDisposed
	}
	s := v.feed.Toggle()
	v.logger.Info("realtime toggled", "state", s)
	return s, nil
}

// SetInterval restarts a running feed with the new period. A stopped feed
// keeps it for the next Start.
func (v *View) SetInterval(d time.Duration) error {
	v.control.Lock()
	defer v.control.Unlock()
	if v.isDisposed() {
		return ErrDisposed
	}
	if err := v.feed.SetInterval(d); err != nil {
		return err
	}
	v.logger.Info("interval changed", "interval", d, "state", v.feed.State())
	return nil
}

func (v *View) State() feed.State {
	return v.feed.State()
}

// Dispose stops the feed unconditionally, then destroys the sink. Safe to
// call more than once.
func (v *View) Dispose() error {
	v.control.Lock()
	defer v.control.Unlock()
	v.feed.Stop()

	v.mutex.Lock()
	if v.disposed {
		v.mutex.Unlock()
		return nil
	}
	v.disposed = true
	v.mutex.Unlock()

	v.logger.Info("view disposed", "ticks", v.feed.Ticks())
	return v.sink.Destroy()
}

// Snapshot copies the chart config together with the feed status.
func (v *View) Snapshot() Status {
	// Feed.Stop holds the feed lock while it waits for a tick, and a tick
	// waits for v.mutex: read the feed first.
	interval := v.feed.Interval()
	state := v.feed.State()
	ticks := v.feed.Ticks()

	v.mutex.Lock()
	defer v.mutex.Unlock()
	var last *model.Sample
	if s, ok := v.series.Last(); ok {
		last = &s
	}
	return Status{
		Name:       v.key.Name,
		Labels:     v.key.Labels,
		State:      state.String(),
		Interval:   interval,
		IntervalMS: interval.Milliseconds(),
		Capacity:   v.series.Cap(),
		Length:     v.series.Len(),
		Ticks:      ticks,
		Last:       last,
		Config:     v.cfg.Clone(),
	}
}

// Config returns a copy of the current chart configuration.
func (v *View) Config() *chart.Config {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.cfg.Clone()
}

func (v *View) Samples() model.Samples {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.series.Samples()
}

func (v *View) tick() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.disposed {
		return
	}
	v.series.Tick()
	ds := &v.cfg.Data.Datasets[0]
	ds.Data = v.series.Samples()
	ds.PointStyle.Apply(ds)
	if err := v.sink.Update(v.cfg, chart.ModeNone); err != nil {
		v.sinkErrs++
		v.logger.Warn("render update failed", "error", err, "failures", v.sinkErrs)
	}
}

func (v *View) isDisposed() bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.disposed
}
