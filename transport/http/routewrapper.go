package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type routeWrapper struct {
	mu           *mux.Router
	s            *Server
	errorEncoder EncodeErrorFunc
}

func newRouterWrapper(errorEncoder EncodeErrorFunc, s *Server) *routeWrapper {
	return &routeWrapper{
		mu:           mux.NewRouter(),
		s:            s,
		errorEncoder: errorEncoder,
	}
}

type HandlerFunc func(ctx *Context) error

func (r *routeWrapper) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.ServeHTTP(w, req)
}

func (r *routeWrapper) HandleFunc(method string, path string, handler HandlerFunc) {
	r.mu.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		ctx := newContext(w, req, r.s)
		defer putContext(ctx)
		if err := handler(ctx); err != nil {
			r.errorEncoder(ctx, err)
		}
	}).Methods(method)
}
