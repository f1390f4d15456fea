package series

import (
	"reflect"
	"testing"

	"mini-livechart/pkg/model"
)

func TestSeed(t *testing.T) {
	t.Run("固定生成器", func(t *testing.T) {
		got := Seed(10, Constant(5))
		if len(got) != 10 {
			t.Fatalf("期望 10 个样本, 实际 %d", len(got))
		}
		for i, s := range got {
			if s.X != int64(i) || s.Y != 5 {
				t.Errorf("样本 %d = %+v, 期望 (%d,5)", i, s, i)
			}
		}
	})

	t.Run("n 为 0 或负数", func(t *testing.T) {
		if got := Seed(0, Constant(1)); len(got) != 0 {
			t.Errorf("Seed(0) 长度 = %d", len(got))
		}
		if got := Seed(-3, Constant(1)); len(got) != 0 {
			t.Errorf("Seed(-3) 长度 = %d", len(got))
		}
	})
}

func TestNewBounded(t *testing.T) {
	if _, err := NewBounded(-1, Constant(0)); err != ErrNegativeCapacity {
		t.Errorf("期望 ErrNegativeCapacity, 实际 %v", err)
	}
	if _, err := NewBounded(20, nil); err != ErrNilGenerator {
		t.Errorf("期望 ErrNilGenerator, 实际 %v", err)
	}

	b, err := NewBounded(3, Constant(0), Seed(5, Constant(1))...)
	if err != nil {
		t.Fatal(err)
	}
	want := model.Samples{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}
	if got := b.Samples(); !reflect.DeepEqual(got, want) {
		t.Errorf("超出容量的种子应只保留最近的, got %v", got)
	}
}

func TestBounded_TickFromEmpty(t *testing.T) {
	b, _ := NewBounded(DefaultCapacity, Constant(1))
	if _, ok := b.Last(); ok {
		t.Fatal("空序列不应有最后一个样本")
	}
	for k := 1; k <= 50; k++ {
		b.Tick()

		wantLen := k
		if wantLen > DefaultCapacity {
			wantLen = DefaultCapacity
		}
		if b.Len() != wantLen {
			t.Fatalf("tick %d 后长度 = %d, 期望 %d", k, b.Len(), wantLen)
		}
		last, _ := b.Last()
		if last.X != int64(k-1) {
			t.Fatalf("tick %d 后最后的 x = %d, 期望 %d", k, last.X, k-1)
		}

		samples := b.Samples()
		first := int64(k - wantLen)
		for i, s := range samples {
			if s.X != first+int64(i) {
				t.Fatalf("tick %d: 样本 %d 的 x = %d, 期望 %d", k, i, s.X, first+int64(i))
			}
		}
	}
}

func TestBounded_ReferenceScenario(t *testing.T) {
	gen := &switchable{v: 5}
	b, err := NewBounded(20, gen, Seed(10, gen)...)
	if err != nil {
		t.Fatal(err)
	}

	want := make(model.Samples, 0, 11)
	for i := 0; i < 10; i++ {
		want = append(want, model.Sample{X: int64(i), Y: 5})
	}
	if got := b.Samples(); !reflect.DeepEqual(got, want) {
		t.Fatalf("seed 结果 = %v", got)
	}

	gen.v = 42
	if s := b.Tick(); s != (model.Sample{X: 10, Y: 42}) {
		t.Errorf("Tick() = %+v, 期望 (10,42)", s)
	}
	want = append(want, model.Sample{X: 10, Y: 42})
	if got := b.Samples(); !reflect.DeepEqual(got, want) {
		t.Fatalf("一次 tick 后 = %v", got)
	}

	gen.v = 0
	for i := 0; i < 11; i++ {
		b.Tick()
	}
	if b.Len() != 20 {
		t.Errorf("长度 = %d, 期望 20", b.Len())
	}
	if first := b.Samples()[0]; first.X != 2 {
		t.Errorf("第一个样本 x = %d, 期望 2", first.X)
	}
}

func TestBounded_ZeroCapacity(t *testing.T) {
	b, _ := NewBounded(0, Constant(1))
	b.Tick()
	if b.Len() != 0 {
		t.Errorf("容量为 0 时长度应始终为 0, 实际 %d", b.Len())
	}
}

func TestBounded_SamplesIsCopy(t *testing.T) {
	b, _ := NewBounded(5, Constant(1), Seed(3, Constant(1))...)
	s := b.Samples()
	s[0].Y = 100
	if b.Samples()[0].Y != 1 {
		t.Error("Samples() 返回值不应与窗口共享内存")
	}
}

type switchable struct{ v float64 }

func (s *switchable) Next() float64 { return s.v }
