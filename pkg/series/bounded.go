package series

import (
	"mini-livechart/pkg/model"

	"github.com/gammazero/deque"
)

const DefaultCapacity = 20

// Seed 生成 n 个样本, x 为 0..n-1
func Seed(n int, gen Generator) model.Samples {
	if n <= 0 {
		return model.Samples{}
	}
	samples := make(model.Samples, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, model.Sample{X: int64(i), Y: gen.Next()})
	}
	return samples
}

// Bounded 是一个定长滑动窗口: 尾部追加, 超出容量时淘汰头部.
// 不是并发安全的, 由拥有它的 view 负责串行化.
type Bounded struct {
	capacity int
	gen      Generator
	window   deque.Deque[model.Sample]
}

// NewBounded 创建序列, seed 中超出容量的旧样本会被丢弃
func NewBounded(capacity int, gen Generator, seed ...model.Sample) (*Bounded, error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if gen == nil {
		return nil, ErrNilGenerator
	}
	b := &Bounded{capacity: capacity, gen: gen}
	b.Reset(seed)
	return b, nil
}

// Tick 追加一个新样本并在必要时淘汰最旧的样本, 返回新样本
func (b *Bounded) Tick() model.Sample {
	var next int64
	if b.window.Len() > 0 {
		next = b.window.Back().X + 1
	}
	s := model.Sample{X: next, Y: b.gen.Next()}
	b.window.PushBack(s)
	for b.window.Len() > b.capacity {
		b.window.PopFront()
	}
	return s
}

// Reset 用 samples 替换当前内容, 只保留最近 capacity 个
func (b *Bounded) Reset(samples model.Samples) {
	b.window.Clear()
	start := 0
	if len(samples) > b.capacity {
		start = len(samples) - b.capacity
	}
	for _, s := range samples[start:] {
		b.window.PushBack(s)
	}
}

func (b *Bounded) Samples() model.Samples {
	out := make(model.Samples, b.window.Len())
	for i := range out {
		out[i] = b.window.At(i)
	}
	return out
}

func (b *Bounded) Last() (model.Sample, bool) {
	if b.window.Len() == 0 {
		return model.Sample{}, false
	}
	return b.window.Back(), true
}

func (b *Bounded) Len() int {
	return b.window.Len()
}

func (b *Bounded) Cap() int {
	return b.capacity
}
