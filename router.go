// Copyright 2026 The Routelab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"routelab.dev/router/compiler"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// standardMethods is the accepted HTTP method set. A route registered without
// an explicit Methods option accepts all of them.
var standardMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// HandlerFunc is the application handler signature. The Context carries the
// bound arguments in declaration order; the returned value is handed to the
// response-rendering layer (see ServeHTTP), and errors propagate out of
// Dispatch unchanged.
type HandlerFunc func(ctx context.Context, c *Context) (any, error)

// Route is a named binding of a compiled URL template, an HTTP method set
// and a security requirement to a handler. Routes are immutable after
// registration.
type Route struct {
	name        string
	compiled    *compiler.Route
	handler     HandlerFunc
	methods     map[string]struct{} // nil means all standard methods
	secure      bool
	description string
	tags        []string
}

// Name returns the route's unique name.
func (rt *Route) Name() string { return rt.name }

// Template returns the normalized URL template.
func (rt *Route) Template() string { return rt.compiled.Template() }

// MatchPattern returns the compiled matching pattern, for introspection.
func (rt *Route) MatchPattern() string { return rt.compiled.MatchPattern() }

// Secure reports whether the route only matches secure requests.
func (rt *Route) Secure() bool { return rt.secure }

// Methods returns the accepted methods, sorted. An empty result means the
// route accepts every standard method.
func (rt *Route) Methods() []string {
	if rt.methods == nil {
		return nil
	}

	out := make([]string, 0, len(rt.methods))
	for m := range rt.methods {
		out = append(out, m)
	}
	sort.Strings(out)

	return out
}

func (rt *Route) allowsMethod(method string) bool {
	if rt.methods == nil {
		_, ok := standardMethods[method]

		return ok
	}
	_, ok := rt.methods[method]

	return ok
}

// Router holds the route table and drives matching, binding and handler
// invocation. Create one at the application's composition root, register all
// routes at startup, then dispatch. The table is read-mostly: dispatches run
// against a snapshot, so late registration never corrupts an in-flight pass.
type Router struct {
	mu    sync.RWMutex
	table map[string]*Route

	logger      *slog.Logger
	diagnostics DiagnosticHandler
	recorder    ObservabilityRecorder
	tracer      trace.Tracer
	notFound    HandlerFunc
}

// New creates a Router and applies options. It returns an error when an
// option carries invalid configuration; construction itself cannot fail.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		table:  make(map[string]*Route),
		logger: noopLogger,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustNew creates a Router and panics on invalid options. Intended for
// startup paths where configuration errors should fail fast.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}

	return r
}

// Register compiles a route and inserts it into the table under name.
// Registering a name twice overwrites the earlier route; only the newest is
// reachable by name or during dispatch.
//
// Registration errors are configuration errors and should be treated as
// fatal at startup. Use MustRegister for that fail-fast behavior.
func (r *Router) Register(name, template string, handler HandlerFunc, opts ...RouteOption) (*Route, error) {
	if name == "" {
		return nil, ErrInvalidRouteName
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilHandler, name)
	}

	cfg := routeConfig{}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("route %s: %w", name, err)
		}
	}

	methods, err := methodSet(cfg.methods)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", name, err)
	}

	compiled, err := compiler.Compile(template, cfg.specs)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", name, err)
	}

	rt := &Route{
		name:        name,
		compiled:    compiled,
		handler:     handler,
		methods:     methods,
		secure:      cfg.secure,
		description: cfg.description,
		tags:        cfg.tags,
	}

	if n := len(cfg.specs); n > maxParamsBeforeDiag {
		r.emit(DiagHighParamCount, "route declares an unusually high parameter count", map[string]any{
			"route": name, "params": n,
		})
	}

	r.mu.Lock()
	_, overwrote := r.table[name]
	r.table[name] = rt
	r.mu.Unlock()

	if overwrote {
		r.emit(DiagRouteOverwritten, "route name re-registered, previous route replaced", map[string]any{
			"route": name, "template": compiled.Template(),
		})
	}

	return rt, nil
}

// MustRegister registers a route and panics on failure.
func (r *Router) MustRegister(name, template string, handler HandlerFunc, opts ...RouteOption) *Route {
	rt, err := r.Register(name, template, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustRegister: %v", err))
	}

	return rt
}

// Lookup returns a registered route by name.
func (r *Router) Lookup(name string) (*Route, bool) {
	r.mu.RLock()
	rt, ok := r.table[name]
	r.mu.RUnlock()

	return rt, ok
}

// Dispatch selects the best matching route for the request, binds its
// parameters and invokes the handler, returning the handler's result.
//
// Routes are tried in descending template length (longest first, route name
// as the deterministic tiebreak), which approximates most-specific-first
// precedence. A route whose method set excludes the request, whose pattern
// does not match, whose required parameters are absent, or whose security
// requirement the request fails, is skipped and scanning continues. Once a
// route binds successfully, it is the identified target: handler errors and
// non-missing binding failures propagate to the caller.
//
// ErrRouteNotFound is returned after the table is exhausted.
func (r *Router) Dispatch(ctx context.Context, req *Request) (any, error) {
	method := strings.ToUpper(req.Method)

	var state any
	if r.recorder != nil {
		ctx, state = r.recorder.OnDispatchStart(ctx, req)
	}

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, "router.dispatch", trace.WithAttributes(
			attribute.String("http.request.method", method),
		))
		defer span.End()
	}

	result, routeName, err := r.dispatch(ctx, req, method)

	if span != nil {
		span.SetAttributes(attribute.String("http.route", routeName))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	if r.recorder != nil {
		r.recorder.OnDispatchEnd(ctx, state, routeName, err)
	}

	return result, err
}

func (r *Router) dispatch(ctx context.Context, req *Request, method string) (any, string, error) {
	for _, rt := range r.snapshot() {
		if !rt.allowsMethod(method) {
			continue
		}

		captures, ok := rt.compiled.Match(req.Path)
		if !ok {
			continue
		}

		args, named, err := bindArgs(rt.compiled.Bindings(), captures, req)
		if err != nil {
			if errors.Is(err, ErrMissingParameter) {
				continue
			}

			return nil, rt.name, fmt.Errorf("route %s: %w", rt.name, err)
		}

		if rt.secure && !req.Secure {
			r.emit(DiagInsecureDispatch, "insecure request matched a secure-only route", map[string]any{
				"route": rt.name, "path": req.Path,
			})

			continue
		}

		c := &Context{
			req:       req,
			routeName: rt.name,
			args:      args,
			named:     named,
			logger:    r.logger,
		}

		r.logger.Debug("route matched", "route", rt.name, "method", method, "path", req.Path)

		result, err := rt.handler(ctx, c)

		return result, rt.name, err
	}

	if r.notFound != nil {
		result, err := r.notFound(ctx, &Context{req: req, routeName: routeUnmatched, logger: r.logger})

		return result, routeUnmatched, err
	}

	return nil, routeUnmatched, fmt.Errorf("%w: %s %s", ErrRouteNotFound, method, req.Path)
}

// routeUnmatched is the sentinel route name reported to observability when
// no route matched. Using a sentinel instead of the raw path keeps metric
// cardinality bounded.
const routeUnmatched = "_unmatched"

// snapshot returns the routes ordered by descending template length. The
// ordering is established per dispatch pass, not on insert, so overwrites
// between passes never leave the precedence stale.
func (r *Router) snapshot() []*Route {
	r.mu.RLock()
	routes := make([]*Route, 0, len(r.table))
	for _, rt := range r.table {
		routes = append(routes, rt)
	}
	r.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		li, lj := len(routes[i].compiled.Template()), len(routes[j].compiled.Template())
		if li != lj {
			return li > lj
		}

		return routes[i].name < routes[j].name
	})

	return routes
}

func (r *Router) emit(kind DiagnosticKind, msg string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
}

func methodSet(methods []string) (map[string]struct{}, error) {
	if len(methods) == 0 {
		return nil, nil
	}

	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		upper := strings.ToUpper(m)
		if _, ok := standardMethods[upper]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, m)
		}
		set[upper] = struct{}{}
	}

	return set, nil
}
