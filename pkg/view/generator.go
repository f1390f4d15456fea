package view

import (
	"fmt"

	"mini-livechart/pkg/config"
	"mini-livechart/pkg/series"
)

// NewGenerator builds the y-value source described by a processed view
// config.
func NewGenerator(gc config.GeneratorConfig) (series.Generator, error) {
	switch gc.Kind {
	case "", config.GeneratorUniform:
		return series.Uniform(gc.Min, gc.Max, gc.Seed), nil
	case config.GeneratorInt:
		return series.IntRange(int64(gc.Min), int64(gc.Max), gc.Seed), nil
	case config.GeneratorConstant:
		return series.Constant(gc.Value), nil
	case config.GeneratorSequence:
		return series.Sequence(gc.Values...), nil
	}
	return nil, fmt.Errorf("unknown generator kind %q", gc.Kind)
}
