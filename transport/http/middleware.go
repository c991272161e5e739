package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mangohow/toolbox/errors"
)

type Handler func(ctx context.Context, req any) (resp any, err error)

type Middleware func(ctx context.Context, req any, handler Handler) (any, error)

type methodHandler func(ctx context.Context, srv any, middleware Middleware) (any, error)

type ServiceDesc struct {
	HandlerType interface{}
	Methods     []MethodDesc
}

type MethodDesc struct {
	Method  string
	Path    string
	Handler methodHandler
}

// Recovery 捕获handler中的panic并转换为500错误
func Recovery() Middleware {
	return func(ctx context.Context, req any, handler Handler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				if c := FromContext(ctx); c != nil {
					c.Logger().Errorf("panic recovered: %v\n%s", r, debug.Stack())
				}
				resp = nil
				err = errors.Unknown(fmt.Errorf("%v", r))
			}
		}()

		return handler(ctx, req)
	}
}

// limitBody 限制请求体大小
func limitBody(n int64, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, n)
		}
		next.ServeHTTP(w, r)
	})
}
