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
	"net/http"
	"testing"

	"routelab.dev/router/compiler"
)

func benchRouter(b *testing.B) *Router {
	b.Helper()

	r := MustNew()
	r.MustRegister("home", "/", okHandler)
	r.MustRegister("post.show", "/posts/{id}", okHandler, Params(compiler.Int("id")))
	r.MustRegister("post.page", "/posts/{id}/{page}", okHandler,
		Params(compiler.Int("id"), compiler.Int("page").WithDefault(1)))
	r.MustRegister("user.post", "/users/{uid}/posts/{slug}", okHandler,
		Params(compiler.Int("uid"), compiler.String("slug")))

	return r
}

func BenchmarkDispatchStatic(b *testing.B) {
	r := benchRouter(b)
	ctx := context.Background()
	req := NewRequest(http.MethodGet, "/")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Dispatch(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDispatchParams(b *testing.B) {
	r := benchRouter(b)
	ctx := context.Background()
	req := NewRequest(http.MethodGet, "/users/42/posts/hello-world")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Dispatch(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDispatchUnmatched(b *testing.B) {
	r := benchRouter(b)
	ctx := context.Background()
	req := NewRequest(http.MethodGet, "/no/such/route")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Dispatch(ctx, req); err == nil {
			b.Fatal("expected no match")
		}
	}
}

func BenchmarkLink(b *testing.B) {
	r := benchRouter(b)
	params := map[string]any{"id": 42, "page": 3}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Link("post.page", params); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	specs := []compiler.Spec{compiler.Int("id"), compiler.Int("page").WithDefault(1)}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := compiler.Compile("/posts/{id}/{page}", specs); err != nil {
			b.Fatal(err)
		}
	}
}
