package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Feed 以固定间隔调用 onTick. 任意时刻最多只有一个 ticker 在跑,
// Stop 返回之后不会再有 tick 发生.
//
// onTick 在 feed 自己的 goroutine 里执行, 不能回调 Feed 的方法.
type Feed struct {
	clock  clockwork.Clock
	logger *slog.Logger
	onTick func()

	mutex    sync.Mutex
	interval time.Duration
	state    State
	cancel   context.CancelFunc
	done     chan struct{}

	ticks atomic.Uint64
}

type Option func(*Feed)

func WithClock(c clockwork.Clock) Option {
	return func(f *Feed) {
		f.clock = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Feed) {
		f.logger = l
	}
}

func New(interval time.Duration, onTick func(), opts ...Option) (*Feed, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if onTick == nil {
		return nil, ErrNilTickFunc
	}
	f := &Feed{
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		onTick:   onTick,
		interval: interval,
	}
	for _, o := range opts {
		o(f)
	}
	return f, nil
}

// Start 启动 ticker, 已经在运行时返回 false
func (f *Feed) Start() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.state == Running {
		return false
	}
	f.startLocked()
	return true
}

// Stop 同步取消 ticker. 未运行时什么也不做.
func (f *Feed) Stop() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.stopLocked()
}

func (f *Feed) Toggle() State {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.state == Running {
		f.stopLocked()
	} else {
		f.startLocked()
	}
	return f.state
}

// SetInterval 保存新的间隔. 运行中时先停再以新间隔重启, 停止状态下
// 只在下次 Start 时生效.
func (f *Feed) SetInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.interval = d
	if f.state == Running {
		f.stopLocked()
		f.startLocked()
	}
	return nil
}

func (f *Feed) Interval() time.Duration {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.interval
}

func (f *Feed) State() State {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.state
}

// Ticks 返回累计执行过的 tick 次数
func (f *Feed) Ticks() uint64 {
	return f.ticks.Load()
}

func (f *Feed) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := f.clock.NewTicker(f.interval)
	done := make(chan struct{})
	f.cancel = cancel
	f.done = done
	f.state = Running
	f.logger.Debug("feed started", "interval", f.interval)
	go f.run(ctx, ticker, done)
}

func (f *Feed) stopLocked() {
	if f.state != Running {
		return
	}
	f.cancel()
	<-f.done
	f.cancel = nil
	f.done = nil
	f.state = Stopped
	f.logger.Debug("feed stopped", "ticks", f.ticks.Load())
}

func (f *Feed) run(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			// select 随机挑选就绪的分支, 取消之后不能再执行 tick
			if ctx.Err() != nil {
				return
			}
			f.onTick()
			f.ticks.Add(1)
		case <-ctx.Done():
			return
		}
	}
}
