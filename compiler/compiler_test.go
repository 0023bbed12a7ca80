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

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "/"},
		{"root", "/", "/"},
		{"plain", "/users", "/users"},
		{"no leading slash", "users", "/users"},
		{"trailing slash", "/users/", "/users"},
		{"both slashes doubled", "//users//", "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

// TestCompilePatternGeneration pins the generated pattern text for the
// placeholder replacement and optional-segment widening rules.
func TestCompilePatternGeneration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		specs    []Spec
		want     string
	}{
		{
			name:     "static template",
			template: "/about",
			specs:    nil,
			want:     `(?i)^/about$`,
		},
		{
			name:     "required int",
			template: "/users/{id}",
			specs:    []Spec{Int("id")},
			want:     `(?i)^/users/(?P<id>-?\d+)$`,
		},
		{
			name:     "trailing optional widens",
			template: "/posts/{id}/{page}",
			specs:    []Spec{Int("id"), Int("page").WithDefault(1)},
			want:     `(?i)^/posts/(?P<id>-?\d+)(/(?P<page>-?\d+))?$`,
		},
		{
			name:     "middle optional followed by slash widens",
			template: "/a/{x}/b",
			specs:    []Spec{Int("x").WithDefault(0)},
			want:     `(?i)^/a(/(?P<x>-?\d+))?/b$`,
		},
		{
			name:     "single optional placeholder wraps, never widens",
			template: "/{lang}",
			specs:    []Spec{String("lang").WithDefault("en")},
			want:     `(?i)^(/|/(?P<lang>[^/]+))$`,
		},
		{
			name:     "optional without segment boundary gets an optional group",
			template: "/file-{x}",
			specs:    []Spec{String("x").WithDefault("index")},
			want:     `(?i)^/file-(?P<x>[^/]+)?$`,
		},
		{
			name:     "all-optional multi segment widens and wraps",
			template: "/{lang}/{page}",
			specs:    []Spec{String("lang").WithDefault("en"), Int("page").WithDefault(1)},
			want:     `(?i)^(/|(/(?P<lang>[^/]+))?(/(?P<page>-?\d+))?)$`,
		},
		{
			name:     "float and bool primitives",
			template: "/items/{price}/{sale}",
			specs:    []Spec{Float("price"), Bool("sale")},
			want:     `(?i)^/items/(?P<price>-?\d+(\.\d+)?)/(?P<sale>0|1|false|true)$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rt, err := Compile(tt.template, tt.specs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rt.MatchPattern())
		})
	}
}

func TestCompileWidenedTokens(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/posts/{id}/{page}", []Spec{Int("id"), Int("page").WithDefault(1)})
	require.NoError(t, err)

	bindings := rt.Bindings()
	require.Len(t, bindings, 2)

	assert.Equal(t, "{id}", bindings[0].Token)
	assert.False(t, bindings[0].Widened)

	assert.Equal(t, "/{page}", bindings[1].Token)
	assert.True(t, bindings[1].Widened)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		specs    []Spec
		wantErr  error
	}{
		{
			name:     "undeclared placeholder",
			template: "/users/{id}",
			specs:    nil,
			wantErr:  ErrUnboundPlaceholder,
		},
		{
			name:     "parameter missing from template",
			template: "/users",
			specs:    []Spec{Int("id")},
			wantErr:  ErrParamNotInTemplate,
		},
		{
			name:     "repeated placeholder",
			template: "/x/{id}/{id}",
			specs:    []Spec{Int("id")},
			wantErr:  ErrDuplicatePlaceholder,
		},
		{
			name:     "duplicate parameter",
			template: "/users/{id}",
			specs:    []Spec{Int("id"), String("id")},
			wantErr:  ErrDuplicateParam,
		},
		{
			name:     "empty parameter name",
			template: "/users/{id}",
			specs:    []Spec{Int("")},
			wantErr:  ErrInvalidParamName,
		},
		{
			name:     "name starting with digit",
			template: "/users/{id}",
			specs:    []Spec{Int("1id")},
			wantErr:  ErrInvalidParamName,
		},
		{
			name:     "optional provider",
			template: "/users",
			specs:    []Spec{{Name: "db", Kind: KindProvider, Provide: func() (any, error) { return nil, nil }, Optional: true}},
			wantErr:  ErrOptionalProvider,
		},
		{
			name:     "provider with default",
			template: "/users",
			specs:    []Spec{{Name: "db", Kind: KindProvider, Provide: func() (any, error) { return nil, nil }, Default: 1}},
			wantErr:  ErrOptionalProvider,
		},
		{
			name:     "nil provider",
			template: "/users",
			specs:    []Spec{{Name: "db", Kind: KindProvider}},
			wantErr:  ErrUnsupportedParamType,
		},
		{
			name:     "nil structured type",
			template: "/users/{v}",
			specs:    []Spec{{Name: "v", Kind: KindValue}},
			wantErr:  ErrUnsupportedParamType,
		},
		{
			name:     "unknown kind",
			template: "/users/{v}",
			specs:    []Spec{{Name: "v", Kind: Kind(99)}},
			wantErr:  ErrUnsupportedParamType,
		},
		{
			name:     "provider named like a placeholder",
			template: "/users/{db}",
			specs:    []Spec{{Name: "db", Kind: KindProvider, Provide: func() (any, error) { return nil, nil }}},
			wantErr:  ErrInjectedPlaceholder,
		},
		{
			name:     "request parameter named like a placeholder",
			template: "/users/{req}",
			specs:    []Spec{Request("req")},
			wantErr:  ErrInjectedPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(tt.template, tt.specs)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRouteMatchRequiredOnly(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/users/{id}/posts/{post}", []Spec{Int("id"), Int("post")})
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		match bool
		want  map[string]string
	}{
		{"exact", "/users/42/posts/7", true, map[string]string{"id": "42", "post": "7"}},
		{"negative int", "/users/-1/posts/7", true, map[string]string{"id": "-1", "post": "7"}},
		{"trailing slash normalized", "/users/42/posts/7/", true, map[string]string{"id": "42", "post": "7"}},
		{"case-insensitive statics", "/Users/42/Posts/7", true, map[string]string{"id": "42", "post": "7"}},
		{"missing segment", "/users/42/posts", false, nil},
		{"extra segment", "/users/42/posts/7/x", false, nil},
		{"non-numeric segment", "/users/abc/posts/7", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			captures, ok := rt.Match(tt.path)
			assert.Equal(t, tt.match, ok)
			if tt.match {
				assert.Equal(t, tt.want, captures)
			}
		})
	}
}

func TestRouteMatchOptionalTrailing(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/posts/{id}/{page}", []Spec{Int("id"), Int("page").WithDefault(1)})
	require.NoError(t, err)

	captures, ok := rt.Match("/posts/5/2")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "5", "page": "2"}, captures)

	captures, ok = rt.Match("/posts/5")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "5"}, captures)

	_, ok = rt.Match("/posts")
	assert.False(t, ok, "missing required id segment must not match")

	_, ok = rt.Match("/posts/5/2/3")
	assert.False(t, ok)
}

func TestRouteMatchSingleOptional(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/{lang}", []Spec{String("lang").WithDefault("en")})
	require.NoError(t, err)

	captures, ok := rt.Match("/")
	require.True(t, ok)
	assert.Empty(t, captures)

	captures, ok = rt.Match("/de")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"lang": "de"}, captures)

	_, ok = rt.Match("/de/extra")
	assert.False(t, ok)
}

func TestRouteMatchOptionalWithoutBoundary(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/file-{x}", []Spec{String("x").WithDefault("index")})
	require.NoError(t, err)

	captures, ok := rt.Match("/file-report")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"x": "report"}, captures)

	// The literal prefix with the optional part absent still matches.
	captures, ok = rt.Match("/file-")
	require.True(t, ok)
	assert.Empty(t, captures)

	_, ok = rt.Match("/file")
	assert.False(t, ok)
}

func TestRouteMatchMiddleOptional(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/archive/{year}/entries", []Spec{Int("year").WithDefault(0)})
	require.NoError(t, err)

	captures, ok := rt.Match("/archive/2026/entries")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"year": "2026"}, captures)

	captures, ok = rt.Match("/archive/entries")
	require.True(t, ok)
	assert.Empty(t, captures)
}

func TestRouteMatchStructuredType(t *testing.T) {
	t.Parallel()

	rt, err := Compile("/feed/{format}", []Spec{Value("format", NewEnum("json", "xml"))})
	require.NoError(t, err)

	captures, ok := rt.Match("/feed/json")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"format": "json"}, captures)

	// Enum matching inherits the route pattern's case-insensitivity.
	_, ok = rt.Match("/feed/JSON")
	assert.True(t, ok)

	_, ok = rt.Match("/feed/csv")
	assert.False(t, ok)
}

func TestCompileTemplateNormalization(t *testing.T) {
	t.Parallel()

	rt, err := Compile("users/{id}/", []Spec{Int("id")})
	require.NoError(t, err)
	assert.Equal(t, "/users/{id}", rt.Template())
}
