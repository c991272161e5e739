package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

const DefaultPath = "configs/toolbox.toml"

type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `toml:"writeTimeoutSeconds"`
	MaxBodyBytes        int64  `toml:"maxBodyBytes"`
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

type ToolsConfig struct {
	MaxInputBytes int `toml:"maxInputBytes"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Encoding    string `toml:"encoding"`
	Filename    string `toml:"filename"`
	MaxSizeMB   int    `toml:"maxSizeMB"`
	MaxBackups  int    `toml:"maxBackups"`
	MaxAgeDays  int    `toml:"maxAgeDays"`
	ServiceName string `toml:"serviceName"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Tools  ToolsConfig  `toml:"tools"`
	Log    LogConfig    `toml:"log"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8000",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			MaxBodyBytes:        1 << 20,
		},
		Tools: ToolsConfig{
			MaxInputBytes: 64 << 10,
		},
		Log: LogConfig{
			Level:       "info",
			Encoding:    "console",
			ServiceName: "toolbox",
		},
	}
}

// Load 读取配置文件并覆盖默认值, 文件不存在且required为false时直接返回默认配置
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0:
		return errors.New("server timeouts must not be negative")
	case c.Tools.MaxInputBytes < 0:
		return errors.New("tools.maxInputBytes must not be negative")
	}

	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("log.encoding must be console or json, got %q", c.Log.Encoding)
	}

	return nil
}
