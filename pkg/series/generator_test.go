package series

import "testing"

func TestUniform(t *testing.T) {
	g := Uniform(0, 100, 7)
	for i := 0; i < 1000; i++ {
		v := g.Next()
		if v < 0 || v >= 100 {
			t.Fatalf("Uniform 值越界: %v", v)
		}
	}

	a, b := Uniform(0, 1, 42), Uniform(0, 1, 42)
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			t.Fatal("相同 seed 应产生相同序列")
		}
	}
}

func TestIntRange(t *testing.T) {
	g := IntRange(3, 5, 1)
	seen := map[float64]bool{}
	for i := 0; i < 500; i++ {
		v := g.Next()
		if v != 3 && v != 4 && v != 5 {
			t.Fatalf("IntRange 值越界: %v", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("两端应都能取到, seen = %v", seen)
	}

	if v := IntRange(9, 9, 1).Next(); v != 9 {
		t.Errorf("min == max 时应返回 min, 实际 %v", v)
	}
}

func TestSequence(t *testing.T) {
	g := Sequence(1, 2, 3)
	want := []float64{1, 2, 3, 1, 2}
	for i, w := range want {
		if got := g.Next(); got != w {
			t.Errorf("第 %d 次 = %v, 期望 %v", i, got, w)
		}
	}
	if Sequence().Next() != 0 {
		t.Error("空 Sequence 应返回 0")
	}
}
