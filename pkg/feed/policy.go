package feed

import "time"

// IntervalPolicy 描述输入框允许的更新间隔: [Min, Max], 步长 Step
type IntervalPolicy struct {
	Min  time.Duration `yaml:"min" json:"min_ms"`
	Max  time.Duration `yaml:"max" json:"max_ms"`
	Step time.Duration `yaml:"step" json:"step_ms"`
}

var DefaultPolicy = IntervalPolicy{
	Min:  500 * time.Millisecond,
	Max:  5000 * time.Millisecond,
	Step: 500 * time.Millisecond,
}

func (p IntervalPolicy) Validate(d time.Duration) error {
	if d < p.Min || d > p.Max {
		return NewRangeError(d, p.Min, p.Max)
	}
	if p.Step > 0 && (d-p.Min)%p.Step != 0 {
		return NewStepError(d, p.Step)
	}
	return nil
}

// Clamp 把 d 限制在范围内并对齐到最近的步长
func (p IntervalPolicy) Clamp(d time.Duration) time.Duration {
	if d < p.Min {
		return p.Min
	}
	if d > p.Max {
		return p.Max
	}
	if p.Step <= 0 {
		return d
	}
	steps := (d - p.Min + p.Step/2) / p.Step
	d = p.Min + steps*p.Step
	if d > p.Max {
		d -= p.Step
	}
	return d
}
