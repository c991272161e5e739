package http

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/mangohow/toolbox/errors"
	"github.com/mangohow/toolbox/serialize"
	"github.com/mangohow/toolbox/transport/binding"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/secure"
)

const (
	defaultAddr         = ":8000"
	defaultMaxBodyBytes = 1 << 20
)

// Logger 服务器使用的日志接口, logrus.Logger 和 zap.SugaredLogger 都满足
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

type Server struct {
	server *http.Server
	router *routeWrapper
	addr   string

	log          Logger
	errorEncoder EncodeErrorFunc
	queryBinding binding.Binding
	formBinding  binding.Binding
	bodyBinding  binding.Binding

	resultEncoder EncodeResultFunc

	middlewares []Middleware

	maxBodyBytes  int64
	readTimeout   time.Duration
	writeTimeout  time.Duration
	secureOptions *secure.Options

	ctx context.Context
}

// EncodeErrorFunc 错误处理函数
type EncodeErrorFunc func(ctx *Context, err error)

// DefaultEncodeErrorFunc 默认错误处理函数, 响应体为 {"error": message}
func DefaultEncodeErrorFunc(ctx *Context, err error) {
	e, ok := errors.As(err)
	if !ok {
		e = errors.Unknown(err)
	}

	if err := ctx.JSON(e.HttpStatus(), serialize.Error(e.Message())); err != nil {
		ctx.Logger().Errorf("write error response: %v", err)
	}
}

// Renderer 自己负责写响应的结果, 例如HTML页面
type Renderer interface {
	Render(c *Context) error
}

// EncodeResultFunc 结果处理函数
type EncodeResultFunc func(ctx *Context, arg any)

// DefaultEncodeResultFunc 默认结果处理函数, Renderer自行渲染, 其余结果以JSON返回
func DefaultEncodeResultFunc(ctx *Context, arg any) {
	var err error
	switch v := arg.(type) {
	case nil:
		ctx.WriteStatus(http.StatusNoContent)
	case Renderer:
		err = v.Render(ctx)
	default:
		err = ctx.JSON(http.StatusOK, v)
	}

	if err != nil {
		ctx.Logger().Errorf("write response: %v", err)
	}
}

type Option func(s *Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr == "" {
			addr = defaultAddr
		}
		s.addr = addr
	}
}

func WithEncodeErrorFunc(fn EncodeErrorFunc) Option {
	return func(s *Server) {
		s.errorEncoder = fn
	}
}

func WithEncodeResultFunc(fn EncodeResultFunc) Option {
	return func(s *Server) {
		s.resultEncoder = fn
	}
}

func WithQueryBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.queryBinding = bind
	}
}

func WithFormBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.formBinding = bind
	}
}

func WithBodyBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.bodyBinding = bind
	}
}

func WithLogger(log Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

func WithContext(ctx context.Context) Option {
	return func(s *Server) {
		s.ctx = ctx
	}
}

// WithMaxBodyBytes 限制请求体大小, n < 0 表示不限制
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = d
	}
}

// WithSecureOptions 设置安全相关的响应头
func WithSecureOptions(opts secure.Options) Option {
	return func(s *Server) {
		s.secureOptions = &opts
	}
}

// DefaultSecureOptions suits a page that embeds data: URI images and a
// same-origin script.
func DefaultSecureOptions() secure.Options {
	return secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "same-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'",
	}
}

func New(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}

	if s.queryBinding == nil {
		s.queryBinding = binding.QueryBinding{Tag: "query"}
	}

	if s.formBinding == nil {
		s.formBinding = binding.FormBinding{}
	}

	if s.bodyBinding == nil {
		s.bodyBinding = binding.JsonBinding{}
	}

	if s.errorEncoder == nil {
		s.errorEncoder = DefaultEncodeErrorFunc
	}

	if s.resultEncoder == nil {
		s.resultEncoder = DefaultEncodeResultFunc
	}

	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	if s.ctx == nil {
		s.ctx = context.Background()
	}

	if s.addr == "" {
		s.addr = defaultAddr
	}

	if s.maxBodyBytes == 0 {
		s.maxBodyBytes = defaultMaxBodyBytes
	}

	if s.secureOptions == nil {
		opts := DefaultSecureOptions()
		s.secureOptions = &opts
	}

	s.router = newRouterWrapper(s.errorEncoder, s)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      secure.New(*s.secureOptions).Handler(limitBody(s.maxBodyBytes, s.router)),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	return s
}

func (s *Server) HttpServer() *http.Server {
	return s.server
}

// Handler 返回完整的http.Handler, 便于测试
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) RegisterService(sd *ServiceDesc, srv interface{}) {
	if srv != nil {
		ht := reflect.TypeOf(sd.HandlerType).Elem()
		st := reflect.TypeOf(srv)
		if !st.Implements(ht) {
			s.log.Fatalf("handler type %v not implement %v", st, ht)
		}
	}

	s.register(sd, srv)
}

func (s *Server) register(sd *ServiceDesc, srv interface{}) {
	for _, d := range sd.Methods {
		handler := d.Handler
		s.handle(d.Method, d.Path, func(ctx context.Context, req interface{}) (resp interface{}, err error) {
			return handler(ctx, srv, chainHandler(s.middlewares))
		})
	}
}

func chainHandler(middlewares []Middleware) Middleware {
	if len(middlewares) == 0 {
		return func(ctx context.Context, req any, handler Handler) (any, error) {
			return handler(ctx, req)
		}
	}

	return func(ctx context.Context, req interface{}, handler Handler) (interface{}, error) {
		return middlewares[0](ctx, req, getChainMiddleware(middlewares, 0, handler))
	}
}

func getChainMiddleware(middlewares []Middleware, cur int, handler Handler) Handler {
	if cur >= len(middlewares)-1 {
		return handler
	}

	return func(ctx context.Context, req interface{}) (interface{}, error) {
		return middlewares[cur+1](ctx, req, getChainMiddleware(middlewares, cur+1, handler))
	}
}

func (s *Server) handle(method, relativePath string, handler Handler) {
	s.router.HandleFunc(method, relativePath, s.handlerConvert(handler))
}

func (s *Server) handlerConvert(handler Handler) HandlerFunc {
	return func(c *Context) error {
		ctx := context.WithValue(s.ctx, ctxKey{}, c)
		resp, err := handler(ctx, nil)
		if err != nil {
			return err
		}

		s.resultEncoder(c, resp)

		return nil
	}
}

func (s *Server) Middleware(middleware ...Middleware) {
	s.middlewares = append(s.middlewares, middleware...)
}

func (s *Server) Start() error {
	s.log.Infof("server listen at %s", s.addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
