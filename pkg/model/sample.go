package model

// Sample 是实时序列里的一个点, X 按 tick 单调递增
type Sample struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

type Samples []Sample

func (s Samples) Xs() []float64 {
	xs := make([]float64, len(s))
	for i := range s {
		xs[i] = float64(s[i].X)
	}
	return xs
}

func (s Samples) Ys() []float64 {
	ys := make([]float64, len(s))
	for i := range s {
		ys[i] = s[i].Y
	}
	return ys
}

// Clone 返回一份独立的拷贝, 发给 sink 的数据不能和序列共享底层数组
func (s Samples) Clone() Samples {
	if s == nil {
		return nil
	}
	c := make(Samples, len(s))
	copy(c, s)
	return c
}
