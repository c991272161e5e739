package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolbox.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"

[log]
level = "debug"
encoding = "json"
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	// 未设置的值保持默认
	assert.Equal(t, 65536, cfg.Tools.MaxInputBytes)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "toolbox", cfg.Log.ServiceName)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)

	cfg, err = Load("", true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":         `[server`,
		"unknown key":    "[server]\nport = 80\n",
		"bad encoding":   "[log]\nencoding = \"xml\"\n",
		"negative limit": "[tools]\nmaxInputBytes = -1\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content), true)
			assert.Error(t, err)
		})
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
