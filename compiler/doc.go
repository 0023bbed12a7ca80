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

// Package compiler translates declarative URL templates into matchable
// routes.
//
// A template is a slash-delimited path whose segments may contain {name}
// placeholders. Each placeholder is declared by a Spec, built with the
// package's constructors in handler signature order:
//
//	rt, err := compiler.Compile("/posts/{id}/{page}", []compiler.Spec{
//	    compiler.Int("id"),
//	    compiler.Int("page").WithDefault(1),
//	})
//
// Compile produces a Route whose anchored, case-insensitive pattern captures
// every placeholder by name. Optional parameters at a segment boundary widen
// to absorb their leading slash, so "/posts/{id}/{page}" with an optional
// page matches both "/posts/5/2" and "/posts/5".
//
// Beyond the primitive kinds, parameters may be structured types implementing
// URLType (self-describing pattern, optionality and default), zero-argument
// Providers injected at dispatch time, or the active request object itself.
// Injected parameters never appear in the template.
//
// Compilation is a pure function: the widened-token plan is computed in one
// pass and fixed on the returned Route for its lifetime.
package compiler
