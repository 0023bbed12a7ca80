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
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a declared handler parameter.
type Kind uint8

const (
	// KindString matches any single path segment and binds it unchanged.
	KindString Kind = iota

	// KindInt matches an optionally signed integer segment.
	KindInt

	// KindFloat matches an optionally signed decimal segment.
	KindFloat

	// KindBool matches 0, 1, false or true (case-insensitive).
	KindBool

	// KindValue binds a structured type implementing URLType from the URL.
	KindValue

	// KindProvider binds a dependency-injected value constructed by a
	// zero-argument Provider. Provider parameters never appear in the URL
	// template and must not be optional.
	KindProvider

	// KindRequest binds the active request object itself. Request parameters
	// never appear in the URL template.
	KindRequest
)

// Match patterns for the primitive kinds. Each pattern constrains a single
// path segment; the compiled route applies them case-insensitively.
const (
	intPattern    = `-?\d+`
	floatPattern  = `-?\d+(\.\d+)?`
	boolPattern   = `0|1|false|true`
	stringPattern = `[^/]+`
)

// Provider constructs a dependency-injected argument at dispatch time.
// Providers take no arguments: the value is resolved by declaration alone,
// never from the URL.
type Provider func() (any, error)

// URLType is the capability a structured parameter type must implement to be
// bound from the URL. Conformance is checked at compile time by the type
// system, not discovered at runtime.
type URLType interface {
	// Pattern returns the regular-expression fragment a textual value of
	// this type must satisfy. The fragment is embedded in a named capture
	// group, so alternations are safe.
	Pattern() string

	// Optional reports whether the type self-declares as optional.
	Optional() bool

	// DefaultValue returns the type's own default, used when the segment is
	// absent and the handler declares no default of its own.
	DefaultValue() any

	// Decode constructs a value from the captured segment text.
	Decode(raw string) (any, error)

	// Encode renders a value of this type back into segment text for link
	// generation. It must reject values of the wrong dynamic type.
	Encode(v any) (string, error)
}

// Spec describes one declared handler parameter. Specs are built with the
// String, Int, Float, Bool, Value, Provide and Request constructors and
// consumed by Compile in handler-signature order.
type Spec struct {
	// Name is the parameter identifier, unique within a route. For URL-bound
	// kinds it must correspond to a {name} placeholder in the template.
	Name string

	// Kind selects the binding strategy.
	Kind Kind

	// Optional marks the parameter as omissible. It is implied by a non-nil
	// Default and, for KindValue, by the type declaring itself optional.
	Optional bool

	// Default is the handler-declared default value, used when an optional
	// parameter is absent from the matched path.
	Default any

	// Type is the structured parameter type. Set for KindValue only.
	Type URLType

	// Provide constructs the argument. Set for KindProvider only.
	Provide Provider
}

// String declares a string parameter bound from the URL.
func String(name string) Spec { return Spec{Name: name, Kind: KindString} }

// Int declares an integer parameter bound from the URL.
func Int(name string) Spec { return Spec{Name: name, Kind: KindInt} }

// Float declares a float parameter bound from the URL.
func Float(name string) Spec { return Spec{Name: name, Kind: KindFloat} }

// Bool declares a boolean parameter bound from the URL.
func Bool(name string) Spec { return Spec{Name: name, Kind: KindBool} }

// Value declares a structured parameter bound from the URL via its URLType.
func Value(name string, t URLType) Spec { return Spec{Name: name, Kind: KindValue, Type: t} }

// Provide declares a dependency-injected parameter constructed by p.
func Provide(name string, p Provider) Spec { return Spec{Name: name, Kind: KindProvider, Provide: p} }

// Request declares a parameter bound to the active request object.
func Request(name string) Spec { return Spec{Name: name, Kind: KindRequest} }

// WithDefault returns a copy of the spec with a handler default, marking the
// parameter optional.
func (s Spec) WithDefault(v any) Spec {
	s.Default = v
	s.Optional = true

	return s
}

// matchPattern returns the regex fragment for the spec's kind.
func (s Spec) matchPattern() string {
	switch s.Kind {
	case KindInt:
		return intPattern
	case KindFloat:
		return floatPattern
	case KindBool:
		return boolPattern
	case KindValue:
		return s.Type.Pattern()
	default:
		return stringPattern
	}
}

// urlBound reports whether the spec is satisfied from the URL template.
func (s Spec) urlBound() bool {
	switch s.Kind {
	case KindProvider, KindRequest:
		return false
	default:
		return true
	}
}

// DecodeValue converts captured segment text into the parameter's Go value.
// Booleans are true iff the text is "1" or case-insensitively "true"; the
// match pattern guarantees anything else is "0" or "false".
func (s Spec) DecodeValue(raw string) (any, error) {
	switch s.Kind {
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidParamValue, s.Name, err)
		}

		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidParamValue, s.Name, err)
		}

		return v, nil
	case KindBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case KindValue:
		return s.Type.Decode(raw)
	default:
		return raw, nil
	}
}

// EncodeValue renders a link-generation value into segment text. The value's
// dynamic type must match the parameter's semantic type exactly; booleans
// render as "0" or "1", never as the empty string.
func (s Spec) EncodeValue(v any) (string, error) {
	switch s.Kind {
	case KindInt:
		i, ok := v.(int)
		if !ok {
			return "", fmt.Errorf("%w: %s wants int, got %T", ErrValueTypeMismatch, s.Name, v)
		}

		return strconv.Itoa(i), nil
	case KindFloat:
		f, ok := v.(float64)
		if !ok {
			return "", fmt.Errorf("%w: %s wants float64, got %T", ErrValueTypeMismatch, s.Name, v)
		}

		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("%w: %s wants bool, got %T", ErrValueTypeMismatch, s.Name, v)
		}
		if b {
			return "1", nil
		}

		return "0", nil
	case KindValue:
		return s.Type.Encode(v)
	case KindString:
		str, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: %s wants string, got %T", ErrValueTypeMismatch, s.Name, v)
		}

		return str, nil
	default:
		return "", fmt.Errorf("%w: %s is not bound from the URL", ErrValueTypeMismatch, s.Name)
	}
}

// FallbackValue resolves the value for an absent optional parameter: the
// handler default wins, then a structured type's self-declared default.
// The second return reports whether any default exists.
func (s Spec) FallbackValue() (any, bool) {
	if s.Default != nil {
		return s.Default, true
	}
	if s.Kind == KindValue && s.Type.Optional() {
		return s.Type.DefaultValue(), true
	}

	return nil, false
}
