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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routelab.dev/router/compiler"
)

func TestLink(t *testing.T) {
	t.Parallel()

	r := MustNew()

	r.MustRegister("post.page", "/posts/{id}/{page}", okHandler,
		Params(compiler.Int("id"), compiler.Int("page").WithDefault(1)))

	r.MustRegister("home.lang", "/{lang}", okHandler,
		Params(compiler.String("lang").WithDefault("en")))

	r.MustRegister("flag", "/flags/{on}", okHandler,
		Params(compiler.Bool("on")))

	r.MustRegister("report", "/reports/{year}/{fmt}", okHandler,
		Params(
			compiler.Request("req"),
			compiler.Int("year"),
			compiler.String("fmt").WithDefault("pdf"),
		))

	tests := []struct {
		name   string
		route  string
		params map[string]any
		want   string
	}{
		{
			name:   "all parameters supplied",
			route:  "post.page",
			params: map[string]any{"id": 5, "page": 2},
			want:   "/posts/5/2",
		},
		{
			name:   "widened optional omitted collapses with its slash",
			route:  "post.page",
			params: map[string]any{"id": 5},
			want:   "/posts/5",
		},
		{
			name:   "single optional omitted yields the bare root",
			route:  "home.lang",
			params: nil,
			want:   "/",
		},
		{
			name:   "single optional supplied",
			route:  "home.lang",
			params: map[string]any{"lang": "fr"},
			want:   "/fr",
		},
		{
			name:   "bool renders as one",
			route:  "flag",
			params: map[string]any{"on": true},
			want:   "/flags/1",
		},
		{
			name:   "bool renders as zero",
			route:  "flag",
			params: map[string]any{"on": false},
			want:   "/flags/0",
		},
		{
			name:   "injected parameters never consume link values",
			route:  "report",
			params: map[string]any{"year": 2026, "fmt": "csv"},
			want:   "/reports/2026/csv",
		},
		{
			name:   "unknown params are ignored",
			route:  "flag",
			params: map[string]any{"on": true, "utm": "campaign"},
			want:   "/flags/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Link(tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinkErrors(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.MustRegister("post", "/posts/{id}", okHandler, Params(compiler.Int("id")))

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		_, err := r.Link("nope", nil)
		require.ErrorIs(t, err, ErrRouteNotFound)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		t.Parallel()

		_, err := r.Link("post", nil)
		require.ErrorIs(t, err, ErrMissingLinkParameter)
	})

	t.Run("type mismatch leaves the table untouched", func(t *testing.T) {
		t.Parallel()

		_, err := r.Link("post", map[string]any{"id": "5"})
		require.ErrorIs(t, err, compiler.ErrValueTypeMismatch)

		// The failed attempt must not corrupt subsequent generation.
		got, err := r.Link("post", map[string]any{"id": 5})
		require.NoError(t, err)
		assert.Equal(t, "/posts/5", got)
	})
}

func TestMustLinkPanicsOnError(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.MustRegister("post", "/posts/{id}", okHandler, Params(compiler.Int("id")))

	assert.Panics(t, func() { r.MustLink("post", nil) })
	assert.Equal(t, "/posts/7", r.MustLink("post", map[string]any{"id": 7}))
}

// An optional placeholder glued to a literal prefix has no slash to widen
// into; the generated path with the parameter omitted must still dispatch
// back to the route and bind the default.
func TestLinkDispatchRoundTripWithoutBoundary(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.MustRegister("file", "/file-{x}", func(_ context.Context, c *Context) (any, error) {
		return c.String("x")
	}, Params(compiler.String("x").WithDefault("index")))

	path, err := r.Link("file", nil)
	require.NoError(t, err)
	assert.Equal(t, "/file-", path)

	result, err := r.Dispatch(context.Background(), NewRequest(http.MethodGet, path))
	require.NoError(t, err)
	assert.Equal(t, "index", result)

	result, err = r.Dispatch(context.Background(), NewRequest(http.MethodGet, "/file-report"))
	require.NoError(t, err)
	assert.Equal(t, "report", result)
}

// Links round-trip: a generated path dispatches back to the same route with
// the same parameter values.
func TestLinkDispatchRoundTrip(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.MustRegister("article", "/articles/{id}/{draft}", func(_ context.Context, c *Context) (any, error) {
		id, err := c.Int("id")
		require.NoError(t, err)
		draft, err := c.Bool("draft")
		require.NoError(t, err)

		return map[string]any{"id": id, "draft": draft}, nil
	}, Params(compiler.Int("id"), compiler.Bool("draft")))

	params := map[string]any{"id": 99, "draft": true}

	path, err := r.Link("article", params)
	require.NoError(t, err)

	result, err := r.Dispatch(context.Background(), NewRequest(http.MethodGet, path))
	require.NoError(t, err)
	assert.Equal(t, params, result)
}
