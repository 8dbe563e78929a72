package api

import (
	"errors"
	"log"
	"net/http"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

type HandlerFunc func(req *Request) error

// RouteBuilder collects routes during application setup.
// Registering the same method and path twice keeps the last handler.
type RouteBuilder struct {
	routes   map[string]map[string]HandlerFunc
	defaults map[string]HandlerFunc
}

func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{
		routes:   make(map[string]map[string]HandlerFunc),
		defaults: make(map[string]HandlerFunc),
	}
}

func (rb *RouteBuilder) Handle(method, path string, handler HandlerFunc) *RouteBuilder {
	if _, prs := rb.routes[method]; !prs {
		rb.routes[method] = make(map[string]HandlerFunc)
	}
	rb.routes[method][path] = handler
	return rb
}

func (rb *RouteBuilder) Get(path string, handler HandlerFunc) *RouteBuilder {
	return rb.Handle(http.MethodGet, path, handler)
}

func (rb *RouteBuilder) Post(path string, handler HandlerFunc) *RouteBuilder {
	return rb.Handle(http.MethodPost, path, handler)
}

// Default sets the handler used for requests of this method
// whose path has no registered route.
func (rb *RouteBuilder) Default(method string, handler HandlerFunc) *RouteBuilder {
	rb.defaults[method] = handler
	return rb
}

func (rb *RouteBuilder) DefaultGet(handler HandlerFunc) *RouteBuilder {
	return rb.Default(http.MethodGet, handler)
}

func (rb *RouteBuilder) DefaultPost(handler HandlerFunc) *RouteBuilder {
	return rb.Default(http.MethodPost, handler)
}

// Build freezes the registered routes. Later changes to the
// builder do not affect the returned Router.
func (rb *RouteBuilder) Build() *Router {
	router := &Router{
		routes:   make(map[string]map[string]HandlerFunc, len(rb.routes)),
		defaults: make(map[string]HandlerFunc, len(rb.defaults)),
	}

	for method, paths := range rb.routes {
		router.routes[method] = make(map[string]HandlerFunc, len(paths))
		for path, handler := range paths {
			router.routes[method][path] = handler
		}
	}
	for method, handler := range rb.defaults {
		router.defaults[method] = handler
	}
	return router
}

// Router matches requests by method and exact path.
type Router struct {
	routes   map[string]map[string]HandlerFunc
	defaults map[string]HandlerFunc
}

var _ http.Handler = (*Router)(nil)

func (rt *Router) Lookup(method, path string) (HandlerFunc, bool) {
	handler, prs := rt.routes[method][path]
	return handler, prs
}

func (rt *Router) Dispatch(method, path string, req *Request) error {
	if handler, prs := rt.Lookup(method, path); prs {
		return handler(req)
	}

	if handler, prs := rt.defaults[method]; prs {
		return handler(req)
	}

	return cerr.ErrRouteNotImplemented(method, path)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(w, r)

	err := rt.Dispatch(r.Method, r.URL.Path, req)
	if err == nil {
		return
	}

	if errors.Is(err, cerr.ErrNotImplemented) {
		_ = req.Send(http.StatusNotImplemented, err.Error())
		return
	}

	log.Printf("handler failed [%s %s]: %s\n", r.Method, r.URL.Path, err)
	_ = req.Send(http.StatusInternalServerError, "")
}
