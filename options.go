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
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"routelab.dev/router/compiler"
)

// Option configures a Router at construction time. Options are validated by
// New; MustNew panics on the first invalid one.
type Option func(*Router) error

// WithLogger sets the router's structured logger. The default logger
// discards everything.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	r := router.MustNew(router.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		r.logger = logger

		return nil
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues (route overwrites, high parameter counts) or security
// concerns (insecure requests hitting secure-only routes). The router
// functions correctly whether diagnostics are collected or not.
//
// Example with logging:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) error {
		if handler == nil {
			return errors.New("diagnostic handler must not be nil")
		}
		r.diagnostics = handler

		return nil
	}
}

// WithObservability attaches an ObservabilityRecorder whose hooks wrap every
// dispatch. See the metrics package for an OpenTelemetry-backed recorder.
func WithObservability(rec ObservabilityRecorder) Option {
	return func(r *Router) error {
		if rec == nil {
			return errors.New("observability recorder must not be nil")
		}
		r.recorder = rec

		return nil
	}
}

// WithTracerProvider enables an OpenTelemetry span around each dispatch,
// carrying the request method and matched route name as attributes. Route
// names rather than raw paths keep span cardinality bounded.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		r.tracer = tp.Tracer("routelab.dev/router")

		return nil
	}
}

// WithNotFoundHandler sets a handler invoked when no route matches, instead
// of returning ErrRouteNotFound from Dispatch. The surrounding layer usually
// converts that into a user-facing not-found response.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(r *Router) error {
		if h == nil {
			return errors.New("not-found handler must not be nil")
		}
		r.notFound = h

		return nil
	}
}

// routeConfig collects per-route options before compilation.
type routeConfig struct {
	methods     []string
	secure      bool
	specs       []compiler.Spec
	description string
	tags        []string
}

// RouteOption configures a single route at registration time.
type RouteOption func(*routeConfig) error

// Methods restricts the route to the given HTTP methods. Literals outside
// the standard set fail registration with ErrUnsupportedMethod.
func Methods(methods ...string) RouteOption {
	return func(cfg *routeConfig) error {
		cfg.methods = append(cfg.methods, methods...)

		return nil
	}
}

// Secure requires the request to arrive over a secure transport. An insecure
// request is a definitive non-match for the route; scanning continues with
// the remaining table.
func Secure() RouteOption {
	return func(cfg *routeConfig) error {
		cfg.secure = true

		return nil
	}
}

// Params declares the handler's parameters in signature order. Declaration
// order is binding order: the handler receives its arguments exactly as
// declared here.
func Params(specs ...compiler.Spec) RouteOption {
	return func(cfg *routeConfig) error {
		cfg.specs = append(cfg.specs, specs...)

		return nil
	}
}

// Description attaches a human-readable description, surfaced by Routes().
func Description(desc string) RouteOption {
	return func(cfg *routeConfig) error {
		cfg.description = desc

		return nil
	}
}

// Tags attaches categorization tags, surfaced by Routes().
func Tags(tags ...string) RouteOption {
	return func(cfg *routeConfig) error {
		cfg.tags = append(cfg.tags, tags...)

		return nil
	}
}
