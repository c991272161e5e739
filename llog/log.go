package llog

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log      = zap.NewNop().Sugar()
	logLevel = zap.NewAtomicLevel()
)

const (
	logTimeFormat = "2006-01-02 15:04:05.000"
)

// config 日志配置
type config struct {
	// 日志级别 (debug, info, warn, error, dpanic, panic, fatal)
	level string
	// 日志输出类型 (console, json)
	encoding string
	// 文件输出路径（为空则不写文件）
	filename string
	// 文件轮转参数
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	// 控制台输出, 为nil时不输出到控制台
	console io.Writer
	// 是否启用 caller（记录调用位置）
	enableCaller bool

	serviceName string

	// 日期格式化器
	timeEncoder zapcore.TimeEncoder
}

func (c *config) init() {
	if c.level == "" {
		c.level = "info"
	}

	if c.encoding == "" {
		c.encoding = "json"
	}

	if c.maxSizeMB <= 0 {
		c.maxSizeMB = 10
	}

	if c.maxBackups <= 0 {
		c.maxBackups = 7
	}

	if c.maxAgeDays <= 0 {
		c.maxAgeDays = 30
	}

	if c.timeEncoder == nil {
		c.timeEncoder = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			type appendTimeEncoder interface {
				AppendTimeLayout(time.Time, string)
			}

			if enc, ok := enc.(appendTimeEncoder); ok {
				enc.AppendTimeLayout(t, logTimeFormat)
				return
			}

			enc.AppendString(t.Format(logTimeFormat))
		}
	}
}

func SetLevel(level string) error {
	return logLevel.UnmarshalText([]byte(level))
}

type LoggerOption func(cfg *config)

func WithLevel(level string) LoggerOption {
	return func(cfg *config) {
		cfg.level = level
	}
}

func WithEncoding(encoding string) LoggerOption {
	return func(cfg *config) {
		cfg.encoding = encoding
	}
}

func WithFilename(filename string) LoggerOption {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithRotation 设置日志文件轮转参数, 小于等于0的值使用默认值
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) LoggerOption {
	return func(cfg *config) {
		cfg.maxSizeMB = maxSizeMB
		cfg.maxBackups = maxBackups
		cfg.maxAgeDays = maxAgeDays
	}
}

// WithConsole 设置控制台输出, 传入nil关闭控制台输出
func WithConsole(w io.Writer) LoggerOption {
	return func(cfg *config) {
		cfg.console = w
	}
}

func WithEnableCaller(enableCaller bool) LoggerOption {
	return func(cfg *config) {
		cfg.enableCaller = enableCaller
	}
}

func WithServiceName(serviceName string) LoggerOption {
	return func(cfg *config) {
		cfg.serviceName = serviceName
	}
}

func WithTimeEncoder(enc zapcore.TimeEncoder) LoggerOption {
	return func(cfg *config) {
		cfg.timeEncoder = enc
	}
}

// InitLogger 初始化全局日志实例, 默认输出到标准输出
func InitLogger(opts ...LoggerOption) (*zap.SugaredLogger, func(), error) {
	cfg := config{console: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.init()

	// 1. 解析日志级别
	if err := logLevel.UnmarshalText([]byte(cfg.level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.level, err)
	}

	// 2. 配置编码器
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = cfg.timeEncoder
	encoderConfig.StacktraceKey = "" // 禁用 zap 自身栈跟踪（由中间件处理）

	// 3. 构建写入器
	var cores []zapcore.Core
	if cfg.filename != "" {
		// 文件输出（带轮转）
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.filename,
				MaxSize:    cfg.maxSizeMB,
				MaxBackups: cfg.maxBackups,
				MaxAge:     cfg.maxAgeDays,
				Compress:   true,
			}),
			logLevel,
		)
		cores = append(cores, fileCore)
	}

	// 4. 控制台输出
	if cfg.console != nil {
		var encoder zapcore.Encoder
		switch cfg.encoding {
		case "console":
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		case "json":
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		default:
			return nil, nil, fmt.Errorf("invalid log encoding %q", cfg.encoding)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(cfg.console), logLevel))
	}

	// 5. 多输出合并
	core := zapcore.NewTee(cores...)

	// 6. 构建 logger
	zapLogger := zap.New(core)
	if cfg.enableCaller {
		zapLogger = zapLogger.WithOptions(zap.AddCaller())
	}
	if cfg.serviceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.serviceName))
	}

	// 7. 设置全局 SugaredLogger
	log = zapLogger.Sugar()

	return log, func() {
		_ = log.Sync()
	}, nil
}

func GetLogger() *zap.SugaredLogger {
	return log
}
