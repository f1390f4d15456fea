package storage

import (
	"sort"
	"sync"

	"mini-livechart/pkg/model"
)

type MemoryStorage struct {
	frames map[uint64]*model.Frame
	mutex  sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		frames: make(map[uint64]*model.Frame),
	}
}

// Put 覆盖该序列的最新帧, seq 必须比已缓存的大
func (ms *MemoryStorage) Put(f *model.Frame) error {
	if f == nil {
		return ErrNilFrame
	}
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	fp := f.Key.Fingerprint()
	if old, ok := ms.frames[fp]; ok && f.Seq <= old.Seq {
		return ErrOutOfOrder
	}
	cp := *f
	cp.Payload = append([]byte(nil), f.Payload...)
	ms.frames[fp] = &cp
	return nil
}

func (ms *MemoryStorage) Latest(k *model.SeriesKey) (model.Frame, error) {
	if k == nil {
		return model.Frame{}, ErrNilKey
	}
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	if f, ok := ms.frames[k.Fingerprint()]; ok {
		return *f, nil
	}
	return model.Frame{}, ErrFrameNotFound
}

func (ms *MemoryStorage) Delete(k *model.SeriesKey) error {
	if k == nil {
		return ErrNilKey
	}
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.frames, k.Fingerprint())
	return nil
}

func (ms *MemoryStorage) Keys() []model.SeriesKey {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	keys := make([]model.SeriesKey, 0, len(ms.frames))
	for _, f := range ms.frames {
		keys = append(keys, f.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
