package internal

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
)

// dynamicMarker prefixes a path segment that binds a named parameter.
const dynamicMarker = ':'

// Router is the interface handlers use to declare routes. All registration
// must complete before the application is sealed; the route table is
// read-only while serving.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group. Routes registered inside fn
	// share the group's middleware but no path prefix. Outer middleware
	// stays outermost.
	Group(fn func(r Router), mw ...Middleware)

	// Route creates a route group under a path prefix, optionally with
	// group middleware. Groups nest arbitrarily.
	Route(prefix string, fn func(r Router), mw ...Middleware)

	// Use appends middleware for routes registered after the call within
	// the current scope.
	Use(mw ...Middleware)
}

// Route is a single registered route. Immutable after insertion into the
// table; the handler already carries the route's composed middleware.
type Route struct {
	// Method is the HTTP method the route answers to.
	Method string

	// Pattern is the normalized path pattern, e.g. "/users/:id".
	Pattern string

	handler  HandlerFunc
	segments []string
	dynamic  bool
}

// RouteTable holds every registered route under two indexes: an exact
// (method, path) map for static routes and an ordered slice for dynamic
// ones, scanned in registration order. A route lives in exactly one index.
//
// The table follows a single-writer-then-many-readers lifecycle: populate
// during startup, seal, then match concurrently without locking.
type RouteTable struct {
	static  map[string]*Route
	dynamic []*Route
	mu      sync.Mutex
	sealed  atomic.Bool
}

func newRouteTable() *RouteTable {
	return &RouteTable{
		static: make(map[string]*Route),
	}
}

// add registers a route. It panics when called after seal, on a nil
// handler, or on a duplicate static pattern — all programmer errors during
// application setup.
func (t *RouteTable) add(method, path string, h HandlerFunc) *Route {
	if h == nil {
		panic("jazzy: nil handler for " + method + " " + path)
	}
	if t.sealed.Load() {
		panic("jazzy: route registered after seal: " + method + " " + path)
	}

	segments := splitPath(path)
	route := &Route{
		Method:   method,
		Pattern:  joinSegments(segments),
		handler:  h,
		segments: segments,
		dynamic:  isDynamic(segments),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if route.dynamic {
		t.dynamic = append(t.dynamic, route)
		return route
	}

	key := staticKey(method, route.Pattern)
	if _, exists := t.static[key]; exists {
		panic("jazzy: duplicate route: " + method + " " + route.Pattern)
	}
	t.static[key] = route
	return route
}

// seal freezes the table. Matching requires no lock afterwards.
func (t *RouteTable) seal() {
	t.sealed.Store(true)
}

// match resolves method+path to a route. Static routes win over dynamic
// ones; dynamic routes are tried in registration order and the first
// structural match wins. On a dynamic match the bound parameters are
// returned alongside the route. Returns (nil, nil) when nothing matches.
func (t *RouteTable) match(method, path string) (*Route, map[string]string) {
	segments := splitPath(path)

	if route, ok := t.static[staticKey(method, joinSegments(segments))]; ok {
		return route, nil
	}

	for _, route := range t.dynamic {
		if route.Method != method || len(route.segments) != len(segments) {
			continue
		}
		params := matchSegments(route.segments, segments)
		if params != nil {
			return route, params
		}
	}
	return nil, nil
}

// matchSegments compares pattern segments against path segments of equal
// length. A dynamic segment matches any single non-empty segment and binds
// it under the parameter name. Returns nil on mismatch.
func matchSegments(pattern, path []string) map[string]string {
	params := make(map[string]string)
	for i, seg := range pattern {
		if len(seg) > 0 && seg[0] == dynamicMarker {
			if path[i] == "" {
				return nil
			}
			params[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil
		}
	}
	return params
}

func isDynamic(segments []string) bool {
	for _, seg := range segments {
		if len(seg) > 0 && seg[0] == dynamicMarker {
			return true
		}
	}
	return false
}

func staticKey(method, pattern string) string {
	return method + " " + pattern
}

// splitPath normalizes a path: leading/trailing slashes stripped, then
// split into segments. Empty segments (from "//") are dropped.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	raw := strings.Split(path, "/")
	segments := raw[:0]
	for _, seg := range raw {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// joinSegments renders segments back to a canonical "/"-rooted path.
func joinSegments(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// joinPath concatenates a group prefix and a route path with normalized
// slash handling.
func joinPath(prefix, path string) string {
	prefix = strings.Trim(prefix, "/")
	path = strings.Trim(path, "/")
	switch {
	case prefix == "":
		return "/" + path
	case path == "":
		return "/" + prefix
	default:
		return "/" + prefix + "/" + path
	}
}

// router is the registration-time facade implementing Router. Each group
// scope is a child facade carrying the accumulated prefix and middleware;
// the parent scope is untouched when the group ends, which gives the strict
// push/pop nesting discipline without shared state.
type router struct {
	table  *RouteTable
	prefix string
	mw     []Middleware
}

func (r *router) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *router) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *router) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *router) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPatch, path, h, mw)
}

func (r *router) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *router) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodOptions, path, h, mw)
}

func (r *router) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodHead, path, h, mw)
}

func (r *router) Group(fn func(r Router), mw ...Middleware) {
	if fn == nil {
		return
	}
	fn(r.child("", mw))
}

func (r *router) Route(prefix string, fn func(r Router), mw ...Middleware) {
	if fn == nil {
		return
	}
	fn(r.child(prefix, mw))
}

func (r *router) Use(mw ...Middleware) {
	r.mw = append(r.mw, mw...)
}

// handle composes the scope's middleware around h (scope first, then
// per-route) and stores the result. Composition happens here, once, at
// registration time.
func (r *router) handle(method, path string, h HandlerFunc, mw []Middleware) {
	stack := make([]Middleware, 0, len(r.mw)+len(mw))
	stack = append(stack, r.mw...)
	stack = append(stack, mw...)
	r.table.add(method, joinPath(r.prefix, path), chain(h, stack...))
}

func (r *router) child(prefix string, mw []Middleware) *router {
	c := &router{
		table:  r.table,
		prefix: r.prefix,
		mw:     append(append([]Middleware(nil), r.mw...), mw...),
	}
	if prefix != "" {
		c.prefix = joinPath(r.prefix, prefix)
	}
	return c
}
