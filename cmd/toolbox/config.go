package main

import (
	"io"

	"github.com/mangohow/toolbox/internal/config"
	"github.com/mangohow/toolbox/llog"
	"github.com/spf13/cobra"
)

const defaultConfigHint = config.DefaultPath

// loadConfig 未指定--config时默认配置文件可以不存在
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.Load(configPath, true)
	}

	return config.Load(config.DefaultPath, false)
}

func loggerOptions(cfg config.LogConfig, console io.Writer) []llog.LoggerOption {
	return []llog.LoggerOption{
		llog.WithLevel(cfg.Level),
		llog.WithEncoding(cfg.Encoding),
		llog.WithFilename(cfg.Filename),
		llog.WithRotation(cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays),
		llog.WithServiceName(cfg.ServiceName),
		llog.WithConsole(console),
	}
}
