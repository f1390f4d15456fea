package storage

import (
	"sync"
	"testing"

	"mini-livechart/pkg/model"
)

// 辅助函数：创建测试用的 SeriesKey
func createTestKey(name string, labels ...string) *model.SeriesKey {
	var labelList model.Labels
	for i := 0; i+1 < len(labels); i += 2 {
		labelList = append(labelList, model.Label{
			Name:  labels[i],
			Value: labels[i+1],
		})
	}
	return &model.SeriesKey{
		Name:   name,
		Labels: labelList,
	}
}

func createTestFrame(k *model.SeriesKey, seq uint64, payload string) *model.Frame {
	return &model.Frame{
		Key:     *k,
		Seq:     seq,
		Mode:    "none",
		Payload: []byte(payload),
	}
}

// TestMemoryStorage_Put 测试写入最新帧
func TestMemoryStorage_Put(t *testing.T) {
	t.Run("写入第一帧", func(t *testing.T) {
		storage := NewMemoryStorage()
		key := createTestKey("realtime", "panel", "cpu")
		if err := storage.Put(createTestFrame(key, 1, "a")); err != nil {
			t.Fatalf("写入失败: %v", err)
		}
		f, err := storage.Latest(key)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if f.Seq != 1 || string(f.Payload) != "a" {
			t.Errorf("期望 seq=1 payload=a, 实际 seq=%d payload=%s", f.Seq, f.Payload)
		}
	})

	t.Run("新帧覆盖旧帧", func(t *testing.T) {
		storage := NewMemoryStorage()
		key := createTestKey("realtime")
		for i := uint64(1); i <= 5; i++ {
			if err := storage.Put(createTestFrame(key, i, string(rune('a'+i)))); err != nil {
				t.Fatalf("写入第 %d 帧失败: %v", i, err)
			}
		}
		f, _ := storage.Latest(key)
		if f.Seq != 5 {
			t.Errorf("期望 seq=5, 实际 %d", f.Seq)
		}
	})

	t.Run("乱序帧被拒绝", func(t *testing.T) {
		storage := NewMemoryStorage()
		key := createTestKey("realtime")
		storage.Put(createTestFrame(key, 3, "c"))
		if err := storage.Put(createTestFrame(key, 3, "dup")); err != ErrOutOfOrder {
			t.Errorf("期望 ErrOutOfOrder, 实际 %v", err)
		}
		if err := storage.Put(createTestFrame(key, 2, "b")); err != ErrOutOfOrder {
			t.Errorf("期望 ErrOutOfOrder, 实际 %v", err)
		}
		f, _ := storage.Latest(key)
		if string(f.Payload) != "c" {
			t.Errorf("乱序写入不应覆盖, 实际 %s", f.Payload)
		}
	})

	t.Run("不同序列互不影响", func(t *testing.T) {
		storage := NewMemoryStorage()
		k1 := createTestKey("realtime", "panel", "cpu")
		k2 := createTestKey("realtime", "panel", "mem")
		storage.Put(createTestFrame(k1, 1, "cpu"))
		storage.Put(createTestFrame(k2, 1, "mem"))

		f1, _ := storage.Latest(k1)
		f2, _ := storage.Latest(k2)
		if string(f1.Payload) != "cpu" || string(f2.Payload) != "mem" {
			t.Errorf("数据不正确: %s %s", f1.Payload, f2.Payload)
		}
	})

	t.Run("payload 被拷贝", func(t *testing.T) {
		storage := NewMemoryStorage()
		key := createTestKey("realtime")
		f := createTestFrame(key, 1, "abc")
		storage.Put(f)
		f.Payload[0] = 'x'
		got, _ := storage.Latest(key)
		if string(got.Payload) != "abc" {
			t.Errorf("缓存不应与调用方共享 payload, 实际 %s", got.Payload)
		}
	})

	t.Run("nil 参数", func(t *testing.T) {
		storage := NewMemoryStorage()
		if err := storage.Put(nil); err != ErrNilFrame {
			t.Errorf("期望 ErrNilFrame, 实际 %v", err)
		}
		if _, err := storage.Latest(nil); err != ErrNilKey {
			t.Errorf("期望 ErrNilKey, 实际 %v", err)
		}
		if err := storage.Delete(nil); err != ErrNilKey {
			t.Errorf("期望 ErrNilKey, 实际 %v", err)
		}
	})
}

func TestMemoryStorage_Delete(t *testing.T) {
	storage := NewMemoryStorage()
	key := createTestKey("realtime")
	storage.Put(createTestFrame(key, 7, "x"))

	if err := storage.Delete(key); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := storage.Latest(key); err != ErrFrameNotFound {
		t.Errorf("期望 ErrFrameNotFound, 实际 %v", err)
	}
	// 删除后重新开始计数
	if err := storage.Put(createTestFrame(key, 1, "y")); err != nil {
		t.Errorf("删除后应允许从 seq=1 写入: %v", err)
	}
}

func TestMemoryStorage_Keys(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Put(createTestFrame(createTestKey("b"), 1, ""))
	storage.Put(createTestFrame(createTestKey("a"), 1, ""))
	keys := storage.Keys()
	if len(keys) != 2 || keys[0].Name != "a" || keys[1].Name != "b" {
		t.Errorf("Keys() = %v", keys)
	}
}

// TestMemoryStorage_Concurrent 并发写入不同序列
func TestMemoryStorage_Concurrent(t *testing.T) {
	storage := NewMemoryStorage()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			key := createTestKey("realtime", "worker", string(rune('a'+g)))
			for i := uint64(1); i <= 100; i++ {
				if err := storage.Put(createTestFrame(key, i, "")); err != nil {
					t.Errorf("worker %d seq %d: %v", g, i, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	if n := len(storage.Keys()); n != 8 {
		t.Errorf("期望 8 个序列, 实际 %d", n)
	}
}
