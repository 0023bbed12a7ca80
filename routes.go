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

import "sort"

// Info describes a registered route for introspection: route listings,
// documentation generation, debug endpoints.
type Info struct {
	Name        string
	Template    string
	Methods     []string // nil means all standard methods
	Secure      bool
	Description string
	Tags        []string
	Params      []ParamInfo
}

// ParamInfo describes one declared parameter of a route.
type ParamInfo struct {
	Name     string
	Optional bool
	Injected bool // bound from request context, not the URL
}

// Routes returns all registered routes, sorted by name for stable output.
func (r *Router) Routes() []Info {
	r.mu.RLock()
	infos := make([]Info, 0, len(r.table))
	for _, rt := range r.table {
		info := Info{
			Name:        rt.name,
			Template:    rt.compiled.Template(),
			Methods:     rt.Methods(),
			Secure:      rt.secure,
			Description: rt.description,
			Tags:        append([]string(nil), rt.tags...),
		}
		for _, b := range rt.compiled.Bindings() {
			info.Params = append(info.Params, ParamInfo{
				Name:     b.Spec.Name,
				Optional: b.Spec.Optional,
				Injected: b.Token == "",
			})
		}
		infos = append(infos, info)
	}
	r.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}
