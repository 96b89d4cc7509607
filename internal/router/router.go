package router

import (
	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/server"
)

// Router dispatches on the request method and the first path segment.
// Everything after that segment is handed to the handler as ctx.Rest.
type Router struct {
	routes map[request.Method]map[string]server.Handler
}

// New creates a new router
func New() *Router {
	return &Router{
		routes: make(map[request.Method]map[string]server.Handler),
	}
}

// Handle registers handler for method and first segment. The root
// path "/" has the empty segment "".
func (r *Router) Handle(method request.Method, segment string, handler server.Handler) {
	if r.routes[method] == nil {
		r.routes[method] = make(map[string]server.Handler)
	}
	r.routes[method][segment] = handler
}

// GET is a shortcut for Handle(request.MethodGet, ...)
func (r *Router) GET(segment string, handler server.HandlerFunc) {
	r.Handle(request.MethodGet, segment, handler)
}

// POST is a shortcut for Handle(request.MethodPost, ...)
func (r *Router) POST(segment string, handler server.HandlerFunc) {
	r.Handle(request.MethodPost, segment, handler)
}

// Match finds the handler for method and segments. It also returns
// the segments after the matched one.
func (r *Router) Match(method request.Method, segments []string) (server.Handler, []string, bool) {
	if len(segments) == 0 {
		return nil, nil, false
	}

	handler, ok := r.routes[method][segments[0]]
	if !ok {
		return nil, nil, false
	}
	return handler, segments[1:], true
}

// ServeHTTP implements server.Handler. Unmatched requests get a 404.
func (r *Router) ServeHTTP(ctx *server.Context) error {
	handler, rest, ok := r.Match(ctx.Method(), ctx.Request.Segments)
	if !ok {
		return ctx.NotFound()
	}

	ctx.Rest = rest
	return handler.ServeHTTP(ctx)
}
