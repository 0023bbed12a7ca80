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
	"net/http"
	"strings"
)

// Request is the inbound request abstraction the dispatcher reads: method,
// path, secure flag and arbitrary request-scoped values. The core never
// writes to it beyond SetValue; response concerns live with the caller.
type Request struct {
	// Method is the HTTP method, uppercase.
	Method string

	// Path is the request path. Dispatch normalizes it before matching, so
	// leading and trailing slash variations are equivalent.
	Path string

	// Secure reports whether the request arrived over a secure transport.
	// Routes registered with the Secure option never match when it is false.
	Secure bool

	// HTTP is the underlying net/http request when the Request was adapted
	// from one. Nil for synthetic requests.
	HTTP *http.Request

	values map[string]any
}

// NewRequest builds a synthetic request, mostly useful in tests and when
// driving the dispatcher outside an HTTP server.
func NewRequest(method, path string) *Request {
	return &Request{Method: strings.ToUpper(method), Path: path}
}

// FromHTTP adapts a net/http request. The secure flag is derived from the
// transport: a non-nil TLS connection state.
func FromHTTP(req *http.Request) *Request {
	return &Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Secure: req.TLS != nil,
		HTTP:   req,
	}
}

// Value returns a request-scoped value set with SetValue.
func (r *Request) Value(key string) (any, bool) {
	v, ok := r.values[key]

	return v, ok
}

// SetValue stores a request-scoped value. Requests are owned by a single
// dispatch call, so no locking is involved.
func (r *Request) SetValue(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.values[key] = v
}
