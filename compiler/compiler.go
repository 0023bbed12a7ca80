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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnsupportedParamType indicates a parameter declaration the compiler
	// cannot bind: an unknown kind, a nil structured type, or a nil provider.
	ErrUnsupportedParamType = errors.New("unsupported parameter type")

	// ErrInvalidParamName indicates a parameter name that cannot form a
	// named capture group.
	ErrInvalidParamName = errors.New("invalid parameter name")

	// ErrDuplicateParam indicates two parameters declared with the same name.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrOptionalProvider indicates a dependency-injected parameter declared
	// optional. Providers resolve by declaration alone and are never omissible.
	ErrOptionalProvider = errors.New("provider parameter cannot be optional")

	// ErrUnboundPlaceholder indicates a {name} placeholder in the template
	// with no corresponding declared parameter.
	ErrUnboundPlaceholder = errors.New("placeholder has no declared parameter")

	// ErrDuplicatePlaceholder indicates the same {name} placeholder used more
	// than once in a template. Substitution replaces exactly one occurrence,
	// so repeats can never all be bound.
	ErrDuplicatePlaceholder = errors.New("placeholder appears more than once")

	// ErrParamNotInTemplate indicates a URL-bound parameter whose placeholder
	// is missing from the template.
	ErrParamNotInTemplate = errors.New("parameter has no placeholder in template")

	// ErrInjectedPlaceholder indicates an injected (request or provider)
	// parameter that appears as a placeholder. Injected parameters are bound
	// from the request context, never from the URL.
	ErrInjectedPlaceholder = errors.New("injected parameter cannot appear in template")

	// ErrInvalidParamValue indicates captured segment text that cannot be
	// converted to the parameter's type.
	ErrInvalidParamValue = errors.New("invalid parameter value")

	// ErrValueTypeMismatch indicates a link-generation value whose dynamic
	// type does not match the parameter's semantic type.
	ErrValueTypeMismatch = errors.New("value type mismatch")

	// ErrInvalidPattern indicates a structured type's pattern fragment broke
	// the final route regex.
	ErrInvalidPattern = errors.New("invalid match pattern")
)

// placeholderRe locates {name} placeholders in a URL template. Names are
// restricted to Go identifier characters so they remain valid capture-group
// names.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Binding is one entry of a compiled route's parameter-binding plan.
// Bindings keep handler declaration order.
type Binding struct {
	// Spec is the resolved parameter spec, with Optional folded in from the
	// handler default and, for structured types, the type itself.
	Spec Spec

	// Token is the literal text substituted during link generation: the
	// {name} placeholder, or the widened /{name} unit when the optional
	// segment swallows its leading slash. Empty for injected parameters.
	Token string

	// Widened reports whether Token includes the leading slash.
	Widened bool
}

// Route is a compiled route: an anchored matching pattern plus the ordered
// binding plan derived from one URL template. Routes are immutable once
// compiled; the widened-token bookkeeping happens here, exactly once, never
// per request.
type Route struct {
	template string
	regex    *regexp.Regexp
	bindings []Binding
	group    map[string]int // capture-group index per parameter name
}

// Template returns the normalized URL template.
func (r *Route) Template() string { return r.template }

// MatchPattern returns the final anchored pattern source, mostly for
// introspection and tests.
func (r *Route) MatchPattern() string { return r.regex.String() }

// Bindings returns the binding plan in handler declaration order. Callers
// must not modify the returned slice.
func (r *Route) Bindings() []Binding { return r.bindings }

// Match applies the route pattern to a request path after normalizing it.
// On success it returns the captured text per parameter name; optional
// segments absent from the path are simply missing from the map.
func (r *Route) Match(path string) (map[string]string, bool) {
	m := r.regex.FindStringSubmatch(NormalizePath(path))
	if m == nil {
		return nil, false
	}

	captures := make(map[string]string, len(r.group))
	for name, idx := range r.group {
		if idx < len(m) && m[idx] != "" {
			captures[name] = m[idx]
		}
	}

	return captures, true
}

// NormalizePath trims leading and trailing slashes and re-adds a single
// leading slash. The empty path and "/" both normalize to "/".
func NormalizePath(p string) string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return "/"
	}

	return "/" + trimmed
}

// Compile translates a URL template and the handler's declared parameters
// into a Route. Specs must be given in handler signature order; that order
// becomes the binding order at dispatch time.
//
// Placeholders and declared URL-bound parameters must correspond one to one:
// an undeclared {name} fails with ErrUnboundPlaceholder, a declared parameter
// without a placeholder fails with ErrParamNotInTemplate.
func Compile(template string, specs []Spec) (*Route, error) {
	normalized := NormalizePath(template)

	resolved, err := resolveSpecs(specs)
	if err != nil {
		return nil, err
	}

	if err := checkPlaceholders(normalized, resolved); err != nil {
		return nil, err
	}

	pattern, bindings := generatePattern(normalized, resolved)

	regex, err := regexp.Compile(`(?i)^` + pattern + `$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	group := make(map[string]int)
	for i, name := range regex.SubexpNames() {
		if name != "" {
			group[name] = i
		}
	}

	return &Route{
		template: normalized,
		regex:    regex,
		bindings: bindings,
		group:    group,
	}, nil
}

// resolveSpecs validates the declared parameters and folds effective
// optionality into each spec.
func resolveSpecs(specs []Spec) ([]Spec, error) {
	seen := make(map[string]struct{}, len(specs))
	resolved := make([]Spec, 0, len(specs))

	for _, s := range specs {
		if !placeholderNameOK(s.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParamName, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParam, s.Name)
		}
		seen[s.Name] = struct{}{}

		switch s.Kind {
		case KindString, KindInt, KindFloat, KindBool:
			s.Optional = s.Optional || s.Default != nil
		case KindValue:
			if s.Type == nil {
				return nil, fmt.Errorf("%w: %s has no URL type", ErrUnsupportedParamType, s.Name)
			}
			s.Optional = s.Optional || s.Default != nil || s.Type.Optional()
		case KindProvider:
			if s.Provide == nil {
				return nil, fmt.Errorf("%w: %s has no provider", ErrUnsupportedParamType, s.Name)
			}
			if s.Optional || s.Default != nil {
				return nil, fmt.Errorf("%w: %s", ErrOptionalProvider, s.Name)
			}
		case KindRequest:
			// Bound from the active request, nothing to resolve.
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedParamType, s.Name)
		}

		resolved = append(resolved, s)
	}

	return resolved, nil
}

// checkPlaceholders enforces the placeholder/parameter bijection.
func checkPlaceholders(template string, specs []Spec) error {
	found := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if _, dup := found[m[1]]; dup {
			return fmt.Errorf("%w: {%s}", ErrDuplicatePlaceholder, m[1])
		}
		found[m[1]] = struct{}{}
	}

	declared := make(map[string]struct{})
	for _, s := range specs {
		if s.urlBound() {
			if _, ok := found[s.Name]; !ok {
				return fmt.Errorf("%w: %s", ErrParamNotInTemplate, s.Name)
			}
			declared[s.Name] = struct{}{}

			continue
		}
		if _, ok := found[s.Name]; ok {
			return fmt.Errorf("%w: %s", ErrInjectedPlaceholder, s.Name)
		}
	}

	for name := range found {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%w: {%s}", ErrUnboundPlaceholder, name)
		}
	}

	return nil
}

// generatePattern replaces each placeholder with a named capture group and
// computes the final substitution token per parameter.
//
// An optional parameter widens to swallow its leading slash when the
// placeholder directly follows a slash and either ends the template without
// being its only segment, or is directly followed by another slash. The
// widened /{name} unit then vanishes as a whole from both matching and link
// generation when the parameter is absent.
func generatePattern(template string, specs []Spec) (string, []Binding) {
	pattern := template
	bindings := make([]Binding, 0, len(specs))
	urlBound := 0

	// When stripping every placeholder leaves nothing but slashes, the whole
	// template is placeholders and the bare root must also match.
	stripped := placeholderRe.ReplaceAllString(template, "")
	wrapBareRoot := strings.Trim(stripped, "/") == ""

	for _, s := range specs {
		if !s.urlBound() {
			bindings = append(bindings, Binding{Spec: s})

			continue
		}
		urlBound++

		token := "{" + s.Name + "}"
		group := "(?P<" + s.Name + ">" + s.matchPattern() + ")"

		if s.Optional && widens(template, token) {
			pattern = strings.Replace(pattern, "/"+token, "(/"+group+")?", 1)
			bindings = append(bindings, Binding{Spec: s, Token: "/" + token, Widened: true})

			continue
		}

		// An optional placeholder with no segment boundary to widen into
		// still has to be omissible, unless the bare-root alternative
		// already covers its absence.
		if s.Optional && !wrapBareRoot {
			group += "?"
		}

		pattern = strings.Replace(pattern, token, group, 1)
		bindings = append(bindings, Binding{Spec: s, Token: token})
	}

	if urlBound > 0 && wrapBareRoot {
		pattern = "(/|" + pattern + ")"
	}

	return pattern, bindings
}

// widens reports whether the optional placeholder token may absorb its
// leading slash: it must directly follow a slash and either be the last
// segment of a multi-segment template or be directly followed by a slash.
// A template consisting of the placeholder alone never widens; the bare-root
// wrap in generatePattern covers it instead.
func widens(template, token string) bool {
	idx := strings.Index(template, token)
	if idx <= 0 || template[idx-1] != '/' {
		return false
	}

	end := idx + len(token)
	if end == len(template) {
		return template != "/"+token
	}

	return template[end] == '/'
}

func placeholderNameOK(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
