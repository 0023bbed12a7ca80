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

// Package router maps requests to handlers through declarative URL templates
// with typed placeholders, optional segments and dependency-injected
// parameters, and regenerates concrete URLs from route names (reverse
// lookup).
//
// # Key Features
//
//   - Templates with typed placeholders: /users/{id} with id declared int,
//     float, bool, string or a structured URLType
//   - Optional segments that vanish with their separator: /posts/{id}/{page}
//     with an optional page matches both /posts/5/2 and /posts/5
//   - Deterministic precedence: longest template first, per dispatch pass
//   - Handler arguments bound in declaration order, with typed access
//   - Reverse links: Link("user.show", map[string]any{"id": 5})
//   - Per-route method sets and secure-transport requirements
//   - OpenTelemetry tracing and pluggable observability hooks
//
// # Constructor Pattern
//
//   - New() returns (*Router, error): construction cannot fail, but options
//     are validated and invalid configuration is reported immediately.
//   - MustNew() panics instead, for startup paths that should fail fast.
//   - Registration errors (bad method literals, parameter/placeholder
//     mismatches, unsupported parameter declarations) are configuration
//     errors; MustRegister turns them into startup panics.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "net/http"
//
//	    "routelab.dev/router"
//	    "routelab.dev/router/compiler"
//	)
//
//	func main() {
//	    r := router.MustNew()
//
//	    r.MustRegister("post.show", "/posts/{id}/{page}",
//	        func(ctx context.Context, c *router.Context) (any, error) {
//	            id, _ := c.Int("id")
//	            page, _ := c.Int("page")
//	            return fmt.Sprintf("post %d page %d", id, page), nil
//	        },
//	        router.Methods(http.MethodGet),
//	        router.Params(
//	            compiler.Int("id"),
//	            compiler.Int("page").WithDefault(1),
//	        ),
//	    )
//
//	    http.ListenAndServe(":8080", r)
//	}
//
// # Lifecycle
//
// Register every route at startup, then dispatch. The route table tolerates
// concurrent registration, but each dispatch pass runs against a sorted
// snapshot, so the intended model is build-then-serve.
package router
