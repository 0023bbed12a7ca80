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
	"regexp"
	"strings"
)

// Enum is a URLType restricting a parameter to a fixed value set. Matching
// is case-insensitive like the rest of the route pattern; decoded values are
// canonicalized to the declared spelling.
//
//	format := compiler.NewEnum("json", "xml").WithDefault("json")
//	compiler.Value("format", format)
type Enum struct {
	values   []string
	optional bool
	def      string
}

// NewEnum creates an enum over the given values. At least one value is
// required; Compile rejects an empty enum through its empty pattern.
func NewEnum(values ...string) *Enum {
	return &Enum{values: values}
}

// WithDefault returns a copy with a default value, marking the enum
// optional.
func (e *Enum) WithDefault(def string) *Enum {
	return &Enum{values: e.values, optional: true, def: def}
}

// Pattern implements URLType as an alternation of the escaped values.
func (e *Enum) Pattern() string {
	escaped := make([]string, 0, len(e.values))
	for _, v := range e.values {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}

	return strings.Join(escaped, "|")
}

// Optional implements URLType.
func (e *Enum) Optional() bool { return e.optional }

// DefaultValue implements URLType.
func (e *Enum) DefaultValue() any { return e.def }

// Decode implements URLType, canonicalizing case.
func (e *Enum) Decode(raw string) (any, error) {
	for _, v := range e.values {
		if strings.EqualFold(v, raw) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %q not in enum", ErrInvalidParamValue, raw)
}

// Encode implements URLType. Values must be member strings.
func (e *Enum) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: enum wants string, got %T", ErrValueTypeMismatch, v)
	}
	for _, member := range e.values {
		if member == s {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %q not in enum", ErrValueTypeMismatch, s)
}
