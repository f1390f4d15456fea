package stream

import (
	"context"
	"log/slog"
	"sync"

	"mini-livechart/pkg/model"
	"mini-livechart/pkg/storage"
)

const (
	queueSize        = 1024
	subscriptionSize = 16
)

// Hub 把各个 view 发布的帧分发给订阅者. 新订阅者会先收到缓存的最新帧.
// 慢订阅者会丢帧, 不会阻塞发布方.
type Hub struct {
	store  storage.Store
	logger *slog.Logger

	ch     chan *model.Frame
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mutex sync.Mutex
	subs  map[uint64]map[*Subscription]struct{}
}

func NewHub(ctx context.Context, store storage.Store, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Hub{
		store:  store,
		logger: logger,
		ch:     make(chan *model.Frame, queueSize),
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[uint64]map[*Subscription]struct{}),
	}
}

func (h *Hub) Start() {
	h.wg.Add(1)
	go h.consume()
}

// Stop 停止分发并关闭所有订阅
func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for fp, set := range h.subs {
		for sub := range set {
			sub.closeLocked()
		}
		delete(h.subs, fp)
	}
}

// Publish 缓存帧并排队分发
func (h *Hub) Publish(f *model.Frame) error {
	if f == nil {
		return ErrNilFrame
	}
	if h.ctx.Err() != nil {
		return ErrHubStopped
	}
	if err := h.store.Put(f); err != nil {
		return err
	}
	select {
	case h.ch <- f:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

// Forget 丢弃缓存的最新帧, 之后的订阅者不会再收到它
func (h *Hub) Forget(k model.SeriesKey) error {
	return h.store.Delete(&k)
}

func (h *Hub) Subscribe(k model.SeriesKey) (*Subscription, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.ctx.Err() != nil {
		return nil, ErrHubStopped
	}
	fp := k.Fingerprint()
	sub := &Subscription{
		hub: h,
		fp:  fp,
		ch:  make(chan *model.Frame, subscriptionSize),
	}
	sub.C = sub.ch
	if latest, err := h.store.Latest(&k); err == nil {
		sub.deliverLocked(&latest)
	}
	set, ok := h.subs[fp]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[fp] = set
	}
	set[sub] = struct{}{}
	return sub, nil
}

func (h *Hub) Subscribers(k model.SeriesKey) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subs[k.Fingerprint()])
}

func (h *Hub) consume() {
	defer h.wg.Done()
	for {
		select {
		case f := <-h.ch:
			h.dispatch(f)
		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(f *model.Frame) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for sub := range h.subs[f.Key.Fingerprint()] {
		if !sub.deliverLocked(f) {
			h.logger.Debug("subscriber lagging, frame dropped",
				"series", f.Key.String(), "seq", f.Seq, "dropped", sub.dropped)
		}
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if set, ok := h.subs[sub.fp]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.fp)
		}
	}
	sub.closeLocked()
}

// Subscription 的 C 在订阅关闭或 hub 停止时被关闭
type Subscription struct {
	C <-chan *model.Frame

	hub     *Hub
	fp      uint64
	ch      chan *model.Frame
	lastSeq uint64
	dropped int
	closed  bool
}

func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// deliverLocked 只投递比已收到的更新的帧. 需持有 hub.mutex.
func (s *Subscription) deliverLocked(f *model.Frame) bool {
	if s.closed || f.Seq <= s.lastSeq {
		return true
	}
	select {
	case s.ch <- f:
		s.lastSeq = f.Seq
		return true
	default:
		s.dropped++
		return false
	}
}

func (s *Subscription) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
