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
	"fmt"
	"net/http"
	"strconv"
)

// Renderable lets a handler result take over response rendering. Anything a
// handler returns that is not nil, a bool, a scalar or a string must
// implement it to be served over HTTP.
type Renderable interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ServeHTTP adapts the dispatcher to net/http. The core stays transport
// agnostic: this glue converts the request, dispatches, and renders the
// handler result: nil renders 204, booleans and scalars render as text,
// Renderable values render themselves, and ErrRouteNotFound renders 404.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	result, err := r.Dispatch(req.Context(), FromHTTP(req))
	if err != nil {
		if errors.Is(err, ErrRouteNotFound) {
			http.NotFound(w, req)

			return
		}

		r.logger.Error("dispatch failed", "method", req.Method, "path", req.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	if err := renderResult(w, req, result); err != nil {
		r.logger.Error("render failed", "method", req.Method, "path", req.URL.Path, "error", err)
	}
}

func renderResult(w http.ResponseWriter, req *http.Request, result any) error {
	switch v := result.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)

		return nil
	case Renderable:
		return v.Render(w, req)
	case string:
		return writeText(w, v)
	case bool:
		return writeText(w, strconv.FormatBool(v))
	case int:
		return writeText(w, strconv.Itoa(v))
	case int64:
		return writeText(w, strconv.FormatInt(v, 10))
	case float64:
		return writeText(w, strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("unrenderable handler result %T", result)
	}
}

func writeText(w http.ResponseWriter, s string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte(s))

	return err
}
