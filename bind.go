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

	"routelab.dev/router/compiler"
)

// bindArgs executes a route's binding plan against the capture set of a
// successful match, producing the handler arguments in declaration order
// plus the by-name view the Context exposes.
//
// A required parameter with no capture yields ErrMissingParameter, which
// Dispatch treats as a no-match for the route. Every other failure means the
// route was the identified target and the error propagates.
func bindArgs(bindings []compiler.Binding, captures map[string]string, req *Request) ([]any, map[string]any, error) {
	args := make([]any, 0, len(bindings))
	named := make(map[string]any, len(bindings))

	for _, b := range bindings {
		v, err := bindOne(b, captures, req)
		if err != nil {
			return nil, nil, err
		}

		args = append(args, v)
		named[b.Spec.Name] = v
	}

	return args, named, nil
}

func bindOne(b compiler.Binding, captures map[string]string, req *Request) (any, error) {
	s := b.Spec

	switch s.Kind {
	case compiler.KindRequest:
		return req, nil

	case compiler.KindProvider:
		v, err := s.Provide()
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", s.Name, err)
		}

		return v, nil

	case compiler.KindValue:
		raw, captured := captures[s.Name]
		if !captured {
			return absentValue(s)
		}

		v, err := s.DecodeValue(raw)
		if err != nil {
			// A failed construction falls back to the handler default,
			// then the type's own default, before giving up.
			if s.Default != nil {
				return s.Default, nil
			}
			if s.Type.Optional() {
				return s.Type.DefaultValue(), nil
			}

			return nil, err
		}

		return v, nil

	default:
		raw, captured := captures[s.Name]
		if !captured {
			return absentValue(s)
		}

		return s.DecodeValue(raw)
	}
}

// absentValue resolves an uncaptured parameter: the handler default first,
// then a structured type's self-declared default.
func absentValue(s compiler.Spec) (any, error) {
	if v, ok := s.FallbackValue(); ok {
		return v, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingParameter, s.Name)
}
