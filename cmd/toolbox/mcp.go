package main

import (
	"io"
	"os"

	"github.com/mangohow/toolbox/gmcp"
	"github.com/mangohow/toolbox/llog"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tools over MCP on stdin and stdout",
	Args:  cobra.NoArgs,
	RunE:  serveMCP,
}

func serveMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// 标准输出用于协议消息, 配置了日志文件时只写文件, 否则写标准错误
	var console io.Writer = os.Stderr
	if cfg.Log.Filename != "" {
		console = nil
	}
	logger, sync, err := llog.InitLogger(loggerOptions(cfg.Log, console)...)
	if err != nil {
		return err
	}
	defer sync()

	server := gmcp.NewMCPServer(
		gmcp.WithTransport(gmcp.NewStdioTransport(os.Stdin, os.Stdout)),
		gmcp.WithLogger(logger),
		gmcp.WithServerInfo(cfg.Log.ServiceName, version),
	)
	server.Register(gmcp.ToolboxHandlers(cfg.Tools.MaxInputBytes)...)

	return server.Start()
}
