package series

import (
	"math/rand/v2"
	"time"
)

// Generator 产生新样本的 y 值
type Generator interface {
	Next() float64
}

type GeneratorFunc func() float64

func (f GeneratorFunc) Next() float64 {
	return f()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type uniform struct {
	min, max float64
	r        *rand.Rand
}

// Uniform 在 [min, max) 上均匀取值. seed 为 0 时使用当前时间.
func Uniform(min, max float64, seed uint64) Generator {
	if max < min {
		min, max = max, min
	}
	return &uniform{min: min, max: max, r: newRand(seed)}
}

func (u *uniform) Next() float64 {
	return u.min + u.r.Float64()*(u.max-u.min)
}

type intRange struct {
	min, max int64
	r        *rand.Rand
}

// IntRange 在 [min, max] 上取整数, 两端都包含
func IntRange(min, max int64, seed uint64) Generator {
	if max < min {
		min, max = max, min
	}
	return &intRange{min: min, max: max, r: newRand(seed)}
}

func (g *intRange) Next() float64 {
	return float64(g.min + g.r.Int64N(g.max-g.min+1))
}

func Constant(v float64) Generator {
	return GeneratorFunc(func() float64 { return v })
}

type sequence struct {
	values []float64
	i      int
}

// Sequence 按顺序循环返回 values, 主要用于可复现的测试
func Sequence(values ...float64) Generator {
	if len(values) == 0 {
		return Constant(0)
	}
	return &sequence{values: values}
}

func (s *sequence) Next() float64 {
	v := s.values[s.i]
	s.i = (s.i + 1) % len(s.values)
	return v
}
