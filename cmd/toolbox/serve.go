package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mangohow/toolbox/llog"
	"github.com/mangohow/toolbox/service"
	transport "github.com/mangohow/toolbox/transport/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	serveAddr     string
	serveLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level, overrides log.level")
}

func serve(cmd *cobra.Command, _ []string) error {
	// 1. 加载配置
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveLogLevel != "" {
		cfg.Log.Level = serveLogLevel
	}

	// 2. 初始化日志
	logger, sync, err := llog.InitLogger(loggerOptions(cfg.Log, os.Stdout)...)
	if err != nil {
		return err
	}
	defer sync()

	// 3. 注册服务
	server := transport.New(
		transport.WithAddr(cfg.Server.Addr),
		transport.WithLogger(logger),
		transport.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		transport.WithReadTimeout(cfg.Server.ReadTimeout()),
		transport.WithWriteTimeout(cfg.Server.WriteTimeout()),
	)
	server.Middleware(
		transport.Recovery(),
		llog.LoggerInjectMiddleware(""),
		llog.RequestLoggingMiddleware(),
	)
	service.RegisterToolboxHTTPServer(server, service.NewToolboxService(cfg.Tools.MaxInputBytes))

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("server is listening on %s", cfg.Server.Addr)
		errCh <- server.Start()
	}()

	// 4. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return <-errCh
}
