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

// maxParamsBeforeDiag is the declared-parameter count above which a route
// registration emits DiagHighParamCount.
const maxParamsBeforeDiag = 8

// DiagnosticEvent represents a router diagnostic or anomaly. These are
// informational events that may indicate configuration issues or security
// concerns; the router behaves the same whether they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteOverwritten indicates a route name registered twice; the
	// earlier route is gone.
	DiagRouteOverwritten DiagnosticKind = "route_overwritten"

	// DiagHighParamCount indicates a route declaring more than
	// maxParamsBeforeDiag parameters.
	DiagHighParamCount DiagnosticKind = "route_param_count_high"

	// DiagInsecureDispatch indicates an insecure request that matched a
	// secure-only route and was rejected.
	DiagInsecureDispatch DiagnosticKind = "insecure_dispatch_rejected"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, trace events, or ignore them.
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
