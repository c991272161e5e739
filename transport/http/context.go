package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mangohow/toolbox/tools/sync"
	"github.com/mangohow/toolbox/transport/binding"
)

var (
	pool = sync.NewPool[*Context](func() *Context {
		return &Context{}
	})
)

type ctxKey struct{}

type Context struct {
	w   http.ResponseWriter
	req *http.Request
	s   *Server
}

func newContext(w http.ResponseWriter, r *http.Request, s *Server) *Context {
	c := pool.Get()
	c.w = w
	c.req = r
	c.s = s

	return c
}

func putContext(c *Context) {
	c.req = nil
	c.w = nil
	c.s = nil
	pool.Put(c)
}

func (c *Context) Request() *http.Request {
	return c.req
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

func (c *Context) SetHeader(key string, value string) {
	c.w.Header().Set(key, value)
}

func (c *Context) WriteContentType(contentType string) {
	c.w.Header().Set("Content-Type", contentType)
}

func (c *Context) GetContentType() string {
	return c.req.Header.Get("Content-Type")
}

func (c *Context) Logger() Logger {
	return c.s.log
}

// BindQuery 绑定路径中的查询参数 /api/xxx?key1=aaa&key2=bbb
func (c *Context) BindQuery(obj any) error {
	return c.s.queryBinding.Bind(c.req, obj)
}

// BindForm 根据Content-Type绑定body参数, 缺省按表单处理
func (c *Context) BindForm(obj any) error {
	contentType, _, _ := strings.Cut(c.GetContentType(), ";")
	contentType = strings.TrimSpace(contentType)
	switch contentType {
	case "", "application/x-www-form-urlencoded", "multipart/form-data":
		return c.s.formBinding.Bind(c.req, obj)
	case "application/json":
		return c.s.bodyBinding.Bind(c.req, obj)
	}

	_, name, found := strings.Cut(contentType, "/")
	if !found {
		name = contentType
	}
	b := binding.GetBinding(name)
	if b == nil {
		return fmt.Errorf("unsupported Content-Type: %s", contentType)
	}

	return b.Bind(c.req, obj)
}

// BindJSON 绑定body中的JSON参数
func (c *Context) BindJSON(obj any) error {
	return c.s.bodyBinding.Bind(c.req, obj)
}

func (c *Context) String(status int, content string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(status)
	_, err := fmt.Fprint(c.w, content)

	return err
}

func (c *Context) JSON(status int, obj any) error {
	c.w.Header().Set("Content-Type", "application/json")
	c.w.WriteHeader(status)
	return json.NewEncoder(c.w).Encode(obj)
}

// HTML 写入已经渲染好的页面
func (c *Context) HTML(status int, page []byte) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.w.WriteHeader(status)
	_, err := c.w.Write(page)

	return err
}

func (c *Context) WriteStatus(status int) {
	c.w.WriteHeader(status)
}

// FromContext 获取当前请求的Context, ctx不是由Server创建时返回nil
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(ctxKey{}).(*Context)
	return c
}
