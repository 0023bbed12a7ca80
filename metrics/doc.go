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

// Package metrics provides an OpenTelemetry-backed observability recorder
// for the router.
//
//	rec, err := metrics.NewRecorder(metrics.WithPrometheus())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := router.MustNew(router.WithObservability(rec))
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", rec.PrometheusHandler())
//	mux.Handle("/", r)
//
// Dispatch counts and durations are recorded per route name and outcome.
// Unmatched requests are aggregated under the router's "_unmatched"
// sentinel, so metric cardinality stays bounded regardless of request paths.
package metrics
