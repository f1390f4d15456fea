package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Loader struct {
	configPath string
}

const DefaultConfigPath = "config.yaml"

func NewLoader(configPath string) *Loader {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &Loader{configPath: configPath}
}

// Load 读取配置, 展开 ${VAR} 环境变量, 未知字段视为错误
func (l *Loader) Load() (*Config, error) {
	c, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, NewReadError(l.configPath, err)
	}
	cfg := NewConfig()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(c)))))
	dec.KnownFields(true)
	// 空文件也是合法配置
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewParseError(l.configPath, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, NewValidateError(l.configPath, err)
	}
	return cfg, nil
}

// Path 返回实际读取的配置文件路径
func (l *Loader) Path() string {
	return l.configPath
}
