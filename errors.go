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

import "errors"

var (
	// ErrRouteNotFound indicates that no registered route matched a request,
	// or that a named route does not exist.
	ErrRouteNotFound = errors.New("route not found")

	// ErrUnsupportedMethod indicates an HTTP method literal outside the
	// standard set, rejected at registration time.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrInvalidRouteName indicates an empty route name.
	ErrInvalidRouteName = errors.New("route name must not be empty")

	// ErrNilHandler indicates a route registered without a handler.
	ErrNilHandler = errors.New("route handler must not be nil")

	// ErrMissingParameter indicates a required parameter that the matched
	// path did not supply. During dispatch this is a no-match signal for the
	// route under consideration.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrMissingLinkParameter indicates link generation without a value for
	// a required parameter.
	ErrMissingLinkParameter = errors.New("missing required link parameter")

	// ErrArgNotFound indicates a handler asked for a bound argument the
	// route does not declare or the dispatch did not bind.
	ErrArgNotFound = errors.New("argument not found")

	// ErrArgType indicates a bound argument accessed through a typed
	// accessor of the wrong type.
	ErrArgType = errors.New("argument has different type")
)
