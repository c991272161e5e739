package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mangohow/toolbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoServer interface {
	Echo(ctx context.Context, req *echoRequest) (any, error)
}

type echoRequest struct {
	Name string `json:"name" form:"name" query:"name"`
}

type echoFunc func(ctx context.Context, req *echoRequest) (any, error)

func (f echoFunc) Echo(ctx context.Context, req *echoRequest) (any, error) {
	return f(ctx, req)
}

func echoDesc(method, path string, bind func(c *Context, obj any) error) *ServiceDesc {
	return &ServiceDesc{
		HandlerType: (*echoServer)(nil),
		Methods: []MethodDesc{{
			Method: method,
			Path:   path,
			Handler: func(ctx context.Context, srv any, middleware Middleware) (any, error) {
				var in echoRequest
				if err := bind(FromContext(ctx), &in); err != nil {
					return nil, errors.FromError(1, http.StatusBadRequest, "BIND", err.Error(), err)
				}
				h := func(ctx context.Context, req any) (any, error) {
					return srv.(echoServer).Echo(ctx, req.(*echoRequest))
				}
				return middleware(ctx, &in, h)
			},
		}},
	}
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(ctx context.Context, req any, handler Handler) (any, error) {
			order = append(order, name+">")
			resp, err := handler(ctx, req)
			order = append(order, "<"+name)
			return resp, err
		}
	}

	s := New()
	s.Middleware(mw("a"), mw("b"), mw("c"))
	s.RegisterService(echoDesc(http.MethodGet, "/echo", (*Context).BindQuery), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		order = append(order, "handler")
		return map[string]string{"name": req.Name}, nil
	}))

	w := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/echo?name=gopher", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"gopher"}`, w.Body.String())
	assert.Equal(t, []string{"a>", "b>", "c>", "handler", "<c", "<b", "<a"}, order)
}

func TestDefaultEncodeErrorFunc(t *testing.T) {
	s := New()
	s.RegisterService(echoDesc(http.MethodPost, "/echo", (*Context).BindJSON), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		switch req.Name {
		case "typed":
			return nil, errors.New(2, http.StatusConflict, "CONFLICT", "already there")
		default:
			return nil, stderrors.New("boom")
		}
	}))

	w := serve(s.Handler(), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"typed"}`)))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"already there"}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = serve(s.Handler(), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"plain"}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error: boom"}`, w.Body.String())

	w = serve(s.Handler(), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecovery(t *testing.T) {
	s := New()
	s.Middleware(Recovery())
	s.RegisterService(echoDesc(http.MethodGet, "/panic", (*Context).BindQuery), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		panic("kaboom")
	}))

	w := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Server error: kaboom", out["error"])
}

type page string

func (p page) Render(c *Context) error {
	return c.HTML(http.StatusOK, []byte(p))
}

func TestDefaultEncodeResultFunc(t *testing.T) {
	s := New()
	s.RegisterService(echoDesc(http.MethodGet, "/", (*Context).BindQuery), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		switch req.Name {
		case "page":
			return page("<p>hi</p>"), nil
		case "none":
			return nil, nil
		}
		return []int{1, 2}, nil
	}))

	w := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/?name=page", nil))
	assert.Equal(t, "<p>hi</p>", w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	w = serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/?name=none", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `[1,2]`, w.Body.String())
}

func TestBindForm(t *testing.T) {
	s := New()
	s.RegisterService(echoDesc(http.MethodPost, "/", (*Context).BindForm), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		return map[string]string{"name": req.Name}, nil
	}))

	tests := []struct {
		contentType string
		body        string
		status      int
		want        string
	}{
		{"application/x-www-form-urlencoded", "name=form", http.StatusOK, "form"},
		{"application/x-www-form-urlencoded; charset=utf-8", "name=form", http.StatusOK, "form"},
		{"application/json", `{"name":"form"}`, http.StatusOK, "form"},
		// 没有Content-Type时不解析body
		{"", "name=form", http.StatusOK, ""},
		{"text/csv", "name,form", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			w := serve(s.Handler(), r)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"name":"`+tt.want+`"}`, w.Body.String())
			}
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	s := New(WithMaxBodyBytes(8))
	s.RegisterService(echoDesc(http.MethodPost, "/", (*Context).BindJSON), echoFunc(func(ctx context.Context, req *echoRequest) (any, error) {
		return req, nil
	}))

	w := serve(s.Handler(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"much too long"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNew(t *testing.T) {
	s := New(WithAddr(""))
	assert.Equal(t, defaultAddr, s.HttpServer().Addr)

	s = New(WithAddr("127.0.0.1:9000"))
	assert.Equal(t, "127.0.0.1:9000", s.HttpServer().Addr)

	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, s.Start())
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}
