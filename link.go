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
	"fmt"
	"strings"
)

// Link regenerates the concrete path for a named route from parameter
// values (reverse lookup).
//
// Every supplied value must match its parameter's semantic type exactly; a
// mismatch fails without touching the route table. Omitted optional
// parameters collapse together with their widened token, omitted required
// ones fail with ErrMissingLinkParameter. Booleans render as "0" or "1".
// Scheme and host reconstruction are the caller's concern; Link returns the
// path only.
func (r *Router) Link(name string, params map[string]any) (string, error) {
	rt, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	path := rt.compiled.Template()

	for _, b := range rt.compiled.Bindings() {
		if b.Token == "" {
			continue // injected, never part of the URL
		}

		v, supplied := params[b.Spec.Name]
		if !supplied {
			if !b.Spec.Optional {
				return "", fmt.Errorf("%w: %s", ErrMissingLinkParameter, b.Spec.Name)
			}
			path = strings.Replace(path, b.Token, "", 1)

			continue
		}

		text, err := b.Spec.EncodeValue(v)
		if err != nil {
			return "", fmt.Errorf("link %s: %w", name, err)
		}
		if b.Widened {
			text = "/" + text
		}
		path = strings.Replace(path, b.Token, text, 1)
	}

	if path == "" {
		path = "/"
	}

	return path, nil
}

// MustLink generates a link and panics on failure.
func (r *Router) MustLink(name string, params map[string]any) string {
	path, err := r.Link(name, params)
	if err != nil {
		panic(fmt.Sprintf("router.MustLink: %v", err))
	}

	return path
}
