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
	"log/slog"
)

// Context carries one matched request through handler invocation: the active
// request, the matched route's name, and the bound arguments in handler
// declaration order. A Context is owned by a single dispatch call.
type Context struct {
	req       *Request
	routeName string
	args      []any
	named     map[string]any
	logger    *slog.Logger
}

// Request returns the active request.
func (c *Context) Request() *Request { return c.req }

// RouteName returns the name of the matched route.
func (c *Context) RouteName() string { return c.routeName }

// Args returns the bound arguments in handler declaration order. Injected
// parameters appear at their declared position. Callers must not modify the
// returned slice.
func (c *Context) Args() []any { return c.args }

// Arg returns a bound argument by parameter name.
func (c *Context) Arg(name string) (any, bool) {
	v, ok := c.named[name]

	return v, ok
}

// Int returns a bound argument as an int.
// Returns an error if the argument is missing or has a different type.
//
// Example:
//
//	r.MustRegister("user.show", "/users/{id}", func(ctx context.Context, c *router.Context) (any, error) {
//	    id, err := c.Int("id")
//	    if err != nil {
//	        return nil, err
//	    }
//	    // Use id...
//	})
func (c *Context) Int(name string) (int, error) {
	v, ok := c.named[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrArgNotFound, name)
	}

	i, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, not int", ErrArgType, name, v)
	}

	return i, nil
}

// Float returns a bound argument as a float64.
// Returns an error if the argument is missing or has a different type.
func (c *Context) Float(name string) (float64, error) {
	v, ok := c.named[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrArgNotFound, name)
	}

	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, not float64", ErrArgType, name, v)
	}

	return f, nil
}

// Bool returns a bound argument as a bool.
// Returns an error if the argument is missing or has a different type.
func (c *Context) Bool(name string) (bool, error) {
	v, ok := c.named[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrArgNotFound, name)
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, not bool", ErrArgType, name, v)
	}

	return b, nil
}

// String returns a bound argument as a string.
// Returns an error if the argument is missing or has a different type.
func (c *Context) String(name string) (string, error) {
	v, ok := c.named[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrArgNotFound, name)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not string", ErrArgType, name, v)
	}

	return s, nil
}

// Logger returns the router's logger for handler use.
func (c *Context) Logger() *slog.Logger { return c.logger }
