package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mini-livechart/pkg/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPNGSink_Render(t *testing.T) {
	p := NewPNGSink(WithSize(320, 200))

	t.Run("line", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Realtime("live", "random", "", samples(5, 40, 90, 10))
		if err := p.Render(cfg, &buf); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Error("output is not a png")
		}
	})

	t.Run("single.point", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Realtime("live", "random", "#3498db", model.Samples{{X: 3, Y: 42}})
		if err := p.Render(cfg, &buf); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("named.color", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Realtime("live", "random", "teal", samples(5, 40, 90))
		if got := cfg.Data.Datasets[0].BackgroundColor; got != "rgba(0, 128, 128, 0.1)" {
			t.Errorf("background = %q", got)
		}
		if err := p.Render(cfg, &buf); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("scriptable.points", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Realtime("live", "random", "", samples(5, 40, 90))
		cfg.Type = Scatter
		PointStyle{Mode: PointStyleLevels, Warning: 30, Danger: 80}.Apply(&cfg.Data.Datasets[0])
		if err := p.Render(cfg, &buf); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("errors", func(t *testing.T) {
		var buf bytes.Buffer
		if err := p.Render(nil, &buf); !errors.Is(err, ErrNilConfig) {
			t.Errorf("nil config: %v", err)
		}
		if err := p.Render(Realtime("live", "random", "", nil), &buf); !errors.Is(err, ErrNoData) {
			t.Errorf("empty data: %v", err)
		}
		cfg := Realtime("live", "random", "", samples(1, 2))
		cfg.Type = Pie
		if err := p.Render(cfg, &buf); err == nil {
			t.Error("pie should not render")
		}
	})
}

func TestPNGSink_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.png")
	p := NewPNGSink(WithSize(320, 200), WithSnapshotPath(path))
	cfg := Realtime("live", "random", "", samples(1, 2, 3))

	if err := p.Update(cfg, ModeNone); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Error("snapshot is not a png")
	}
	if p.Rendered() != 1 {
		t.Errorf("Rendered() = %d", p.Rendered())
	}

	if err := p.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := p.Update(cfg, ModeNone); !errors.Is(err, ErrSinkDestroyed) {
		t.Errorf("update after destroy: %v", err)
	}
}

func TestPNGSink_NoPathIsNoop(t *testing.T) {
	p := NewPNGSink()
	if err := p.Update(Realtime("live", "random", "", nil), ModeNone); err != nil {
		t.Errorf("update without snapshot path should not render: %v", err)
	}
}

type recordingSink struct {
	updates   int
	destroyed bool
	err       error
}

func (r *recordingSink) Update(*Config, UpdateMode) error {
	r.updates++
	return r.err
}

func (r *recordingSink) Destroy() error {
	r.destroyed = true
	return r.err
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recordingSink{}, &recordingSink{err: boom}
	m := Multi(a, b, Discard)

	if err := m.Update(&Config{}, ModeNone); !errors.Is(err, boom) {
		t.Errorf("Update error = %v", err)
	}
	if err := m.Destroy(); !errors.Is(err, boom) {
		t.Errorf("Destroy error = %v", err)
	}
	if a.updates != 1 || b.updates != 1 || !a.destroyed || !b.destroyed {
		t.Errorf("every sink should be called: %+v %+v", a, b)
	}
}
