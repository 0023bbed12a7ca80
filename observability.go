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

import "context"

// ObservabilityRecorder provides lifecycle hooks around dispatch for
// metrics, tracing and access logging.
//
// Lifecycle:
//  1. Dispatch calls OnDispatchStart(ctx, req) → (enrichedCtx, state). The
//     enriched context flows into the handler; the state token is opaque to
//     the router and handed back unchanged.
//  2. Dispatch runs matching, binding and the handler.
//  3. Dispatch calls OnDispatchEnd(ctx, state, routeName, err). routeName is
//     the matched route's name, or the "_unmatched" sentinel when nothing
//     matched. Implementations should key metrics on route names, not raw
//     paths, to keep cardinality bounded.
//
// Returning a nil state from OnDispatchStart is allowed and simply means the
// implementation carries no per-dispatch state.
//
// Thread safety: all methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	// OnDispatchStart is called before route scanning begins.
	OnDispatchStart(ctx context.Context, req *Request) (context.Context, any)

	// OnDispatchEnd is called after the handler returns or the table is
	// exhausted, with the error that Dispatch is about to return.
	OnDispatchEnd(ctx context.Context, state any, routeName string, err error)
}
