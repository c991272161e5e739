package llog

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mangohow/toolbox/errors"
	transport "github.com/mangohow/toolbox/transport/http"
	"go.uber.org/zap"
)

type loggerKey struct{}

const (
	requestIdKeyName = "X-Request-ID"
)

// WithLogger 将 logger 注入 context
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext 从 context 获取 logger（不存在则返回默认 logger）
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return log
}

// LoggerInjectMiddleware 中间件：注入带 RequestID 的 logger
func LoggerInjectMiddleware(requestIdKey string) transport.Middleware {
	if requestIdKey == "" {
		requestIdKey = requestIdKeyName
	}

	return func(ctx context.Context, req interface{}, handler transport.Handler) (interface{}, error) {
		c := transport.FromContext(ctx)
		if c == nil {
			return handler(ctx, req)
		}

		// 1. 获取/生成 RequestID
		rid := c.Request().Header.Get(requestIdKey)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.SetHeader(requestIdKey, rid) // 响应头返回

		// 2. 创建带 RequestID 的 logger 并注入 context
		cc := WithLogger(ctx, log.With("requestId", rid))

		return handler(cc, req)
	}
}

// RequestLoggingMiddleware 记录请求的方法, 路径, 耗时和错误信息, 不记录请求体
func RequestLoggingMiddleware() transport.Middleware {
	return func(ctx context.Context, req interface{}, handler transport.Handler) (interface{}, error) {
		c := transport.FromContext(ctx)
		if c == nil {
			return handler(ctx, req)
		}

		var (
			logger  = FromContext(ctx)
			request = c.Request()
			start   = time.Now()
		)

		resp, err := handler(ctx, req)

		clientIP := request.Header.Get("X-Real-IP")
		if clientIP == "" {
			clientIP = request.Header.Get("X-Forwarded-For")
		}
		if clientIP == "" {
			clientIP = request.RemoteAddr
		}

		fields := []interface{}{
			"method", request.Method,
			"path", request.URL.Path,
			"query", request.URL.RawQuery,
			"ip", clientIP,
			"latency", time.Since(start),
		}

		if err == nil {
			logger.Infow("Request", append(fields, "status", http.StatusOK)...)
			return resp, nil
		}

		e, ok := errors.As(err)
		if !ok {
			e = errors.Unknown(err)
		}
		fields = append(fields,
			"status", e.HttpStatus(),
			"errCode", e.Code(),
			"errReason", e.Reason(),
			"errMsg", e.Message(),
		)

		// 客户端错误记录为warn
		if e.HttpStatus() < http.StatusInternalServerError {
			logger.Warnw("Request failed", fields...)
		} else {
			logger.Errorw("Server error", fields...)
		}

		return resp, err
	}
}
