package stream

import (
	"encoding/json"
	"sync"
	"time"

	"mini-livechart/pkg/chart"
	"mini-livechart/pkg/model"
)

// ModeDestroy 是 sink 被销毁时发出的最后一帧的 mode
const ModeDestroy = "destroy"

// Message 是 WebSocket 上发送的 JSON 内容
type Message struct {
	View   string        `json:"view"`
	Labels model.Labels  `json:"labels,omitempty"`
	Seq    uint64        `json:"seq"`
	Mode   string        `json:"mode"`
	Config *chart.Config `json:"config,omitempty"`
}

// Sink 把每次更新编码成帧发布到 hub
type Sink struct {
	hub *Hub
	key model.SeriesKey

	mutex     sync.Mutex
	seq       uint64
	destroyed bool
}

func NewSink(hub *Hub, key model.SeriesKey) *Sink {
	return &Sink{hub: hub, key: key}
}

func (s *Sink) Update(cfg *chart.Config, mode chart.UpdateMode) error {
	if cfg == nil {
		return chart.ErrNilConfig
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.destroyed {
		return chart.ErrSinkDestroyed
	}
	return s.publishLocked(string(mode), cfg)
}

// Destroy 发出 destroy 帧并清掉缓存, 可以重复调用
func (s *Sink) Destroy() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	err := s.publishLocked(ModeDestroy, nil)
	if ferr := s.hub.Forget(s.key); err == nil {
		err = ferr
	}
	return err
}

func (s *Sink) publishLocked(mode string, cfg *chart.Config) error {
	s.seq++
	payload, err := json.Marshal(Message{
		View:   s.key.Name,
		Labels: s.key.Labels,
		Seq:    s.seq,
		Mode:   mode,
		Config: cfg,
	})
	if err != nil {
		return err
	}
	return s.hub.Publish(&model.Frame{
		Key:     s.key,
		Seq:     s.seq,
		Mode:    mode,
		Payload: payload,
		Time:    time.Now(),
	})
}
