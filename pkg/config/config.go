package config

import (
	"fmt"
	"strings"
	"time"

	"mini-livechart/pkg/chart"
	"mini-livechart/pkg/feed"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Global GlobalConfig `yaml:"global"`
	Views  []ViewConfig `yaml:"views"`
}

type ServerConfig struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
}

type GlobalConfig struct {
	Interval       time.Duration        `yaml:"interval"`
	Capacity       int                  `yaml:"capacity"`
	IntervalPolicy *feed.IntervalPolicy `yaml:"interval_policy"`
	Labels         map[string]string    `yaml:"labels"`
}

type ViewConfig struct {
	Name       string            `yaml:"name"`
	Title      string            `yaml:"title"`
	Label      string            `yaml:"label"`
	Labels     map[string]string `yaml:"labels"`
	Capacity   int               `yaml:"capacity"`
	Seed       *int              `yaml:"seed"`
	Interval   time.Duration     `yaml:"interval"`
	AutoStart  bool              `yaml:"autostart"`
	Color      string            `yaml:"color"`
	Generator  GeneratorConfig   `yaml:"generator"`
	PointStyle chart.PointStyle  `yaml:"point_style"`
	Snapshot   SnapshotConfig    `yaml:"snapshot"`
}

type GeneratorConfig struct {
	Kind   string    `yaml:"kind"`
	Min    float64   `yaml:"min"`
	Max    float64   `yaml:"max"`
	Value  float64   `yaml:"value"`
	Values []float64 `yaml:"values"`
	Seed   uint64    `yaml:"seed"`
}

type SnapshotConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

const (
	GeneratorUniform  = "uniform"
	GeneratorInt      = "int"
	GeneratorConstant = "constant"
	GeneratorSequence = "sequence"
)

const (
	DefaultListen       = ":8080"
	DefaultLogLevel     = "info"
	DefaultInterval     = 1000 * time.Millisecond
	DefaultCapacity     = 20
	DefaultGeneratorMax = 100
)

func NewConfig() *Config {
	return &Config{}
}

// Policy 返回生效的间隔策略
func (c *Config) Policy() feed.IntervalPolicy {
	if c.Global.IntervalPolicy != nil {
		return *c.Global.IntervalPolicy
	}
	return feed.DefaultPolicy
}

func (c *Config) Validate() error {
	p := c.Policy()
	if p.Min <= 0 || p.Max < p.Min || p.Step < 0 {
		return fmt.Errorf("interval_policy: need 0 < min (%v) <= max (%v) and step (%v) >= 0",
			p.Min, p.Max, p.Step)
	}
	if c.Global.Interval != 0 {
		if err := p.Validate(c.Global.Interval); err != nil {
			return fmt.Errorf("global interval: %w", err)
		}
	}
	if c.Global.Capacity < 0 {
		return fmt.Errorf("global capacity (%d) must be >= 0", c.Global.Capacity)
	}

	seen := make(map[string]bool, len(c.Views))
	for i, vc := range c.Views {
		if vc.Name == "" {
			return fmt.Errorf("views[%d]: name is required", i)
		}
		if strings.ContainsAny(vc.Name, "/ ") {
			return fmt.Errorf("view %q: name must not contain '/' or spaces", vc.Name)
		}
		if seen[vc.Name] {
			return fmt.Errorf("view %q: duplicate name", vc.Name)
		}
		seen[vc.Name] = true

		if vc.Interval != 0 {
			if err := p.Validate(vc.Interval); err != nil {
				return fmt.Errorf("view %q: %w", vc.Name, err)
			}
		}
		if vc.Capacity < 0 {
			return fmt.Errorf("view %q: capacity (%d) must be >= 0", vc.Name, vc.Capacity)
		}
		if vc.Seed != nil && *vc.Seed < 0 {
			return fmt.Errorf("view %q: seed (%d) must be >= 0", vc.Name, *vc.Seed)
		}
		switch vc.Generator.Kind {
		case "", GeneratorUniform, GeneratorInt, GeneratorConstant:
		case GeneratorSequence:
			if len(vc.Generator.Values) == 0 {
				return fmt.Errorf("view %q: sequence generator has no values", vc.Name)
			}
		default:
			return fmt.Errorf("view %q: unknown generator kind %q", vc.Name, vc.Generator.Kind)
		}
		if vc.Color != "" {
			if _, err := chart.ParseColor(vc.Color); err != nil {
				return fmt.Errorf("view %q: %w", vc.Name, err)
			}
		}
		if err := vc.PointStyle.Validate(); err != nil {
			return fmt.Errorf("view %q: %w", vc.Name, err)
		}
		if vc.Snapshot.Width < 0 || vc.Snapshot.Height < 0 {
			return fmt.Errorf("view %q: snapshot size must be >= 0", vc.Name)
		}
	}
	return nil
}

// Process 填充默认值并合并全局标签, 返回的顺序与配置文件一致
func (c *Config) Process() []ViewConfig {
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	globalInterval := c.Global.Interval
	if globalInterval == 0 {
		globalInterval = DefaultInterval
	}
	globalCapacity := c.Global.Capacity
	if globalCapacity == 0 {
		globalCapacity = DefaultCapacity
	}

	result := make([]ViewConfig, 0, len(c.Views))
	for i := range c.Views {
		vc := c.Views[i]
		if vc.Title == "" {
			vc.Title = vc.Name
		}
		if vc.Label == "" {
			vc.Label = vc.Name
		}
		if vc.Interval == 0 {
			vc.Interval = globalInterval
		}
		if vc.Capacity == 0 {
			vc.Capacity = globalCapacity
		}
		if vc.Seed == nil {
			seed := vc.Capacity / 2
			vc.Seed = &seed
		} else {
			seed := *vc.Seed
			vc.Seed = &seed
		}

		merged := make(map[string]string, len(c.Global.Labels)+len(vc.Labels))
		for k, v := range c.Global.Labels {
			merged[k] = v
		}
		for k, v := range vc.Labels {
			merged[k] = v
		}
		vc.Labels = merged

		if vc.Generator.Kind == "" {
			vc.Generator.Kind = GeneratorUniform
		}
		if (vc.Generator.Kind == GeneratorUniform || vc.Generator.Kind == GeneratorInt) &&
			vc.Generator.Min == 0 && vc.Generator.Max == 0 {
			vc.Generator.Max = DefaultGeneratorMax
		}
		vc.Generator.Values = append([]float64(nil), vc.Generator.Values...)
		result = append(result, vc)
	}
	return result
}
