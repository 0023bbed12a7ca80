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

package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"routelab.dev/router"
)

// meterName identifies the instrumentation scope.
const meterName = "routelab.dev/router/metrics"

// DefaultDurationBuckets are histogram boundaries for dispatch duration in
// seconds, covering sub-millisecond matching up to slow handlers.
var DefaultDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Recorder implements router.ObservabilityRecorder on the OpenTelemetry
// metrics API. It counts dispatches by route and outcome and measures
// dispatch duration. The backing provider is selectable: Prometheus (with a
// private registry and an HTTP handler to expose it), OTLP over HTTP, stdout
// for development, or any user-supplied MeterProvider.
type Recorder struct {
	provider      Provider
	meterProvider metric.MeterProvider
	ownedProvider *sdkmetric.MeterProvider // nil when user-supplied
	meter         metric.Meter

	dispatches metric.Int64Counter
	duration   metric.Float64Histogram

	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler
	otlpEndpoint       string
	durationBuckets    []float64
	logger             *slog.Logger
}

// NewRecorder creates a Recorder with the given options. The default
// provider is Prometheus.
func NewRecorder(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:        PrometheusProvider,
		durationBuckets: DefaultDurationBuckets,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if err := r.initializeProvider(); err != nil {
		return nil, err
	}

	return r, nil
}

// initializeMetrics creates the instruments on the configured meter.
func (r *Recorder) initializeMetrics() error {
	var err error

	r.dispatches, err = r.meter.Int64Counter(
		"router.dispatches",
		metric.WithDescription("Dispatched requests by route and outcome"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return fmt.Errorf("create dispatch counter: %w", err)
	}

	r.duration, err = r.meter.Float64Histogram(
		"router.dispatch.duration",
		metric.WithDescription("Dispatch duration including handler execution"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("create duration histogram: %w", err)
	}

	return nil
}

// OnDispatchStart implements router.ObservabilityRecorder. The state token
// is the dispatch start time.
func (r *Recorder) OnDispatchStart(ctx context.Context, _ *router.Request) (context.Context, any) {
	return ctx, time.Now()
}

// OnDispatchEnd implements router.ObservabilityRecorder. Metrics are keyed
// on the route name (or the router's unmatched sentinel), never the raw
// path, to keep cardinality bounded.
func (r *Recorder) OnDispatchEnd(ctx context.Context, state any, routeName string, err error) {
	start, ok := state.(time.Time)
	if !ok {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("route", routeName),
		attribute.String("outcome", outcome),
	)

	r.dispatches.Add(ctx, 1, attrs)
	r.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// PrometheusHandler returns the HTTP handler exposing the private registry.
// It is only available with the Prometheus provider.
func (r *Recorder) PrometheusHandler() http.Handler {
	return r.prometheusHandler
}

// MeterProvider returns the provider backing the recorder's instruments.
func (r *Recorder) MeterProvider() metric.MeterProvider {
	return r.meterProvider
}

// Shutdown flushes and stops the recorder's own meter provider. It is a
// no-op for user-supplied providers, whose lifecycle stays with the caller.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.ownedProvider == nil {
		return nil
	}

	return r.ownedProvider.Shutdown(ctx)
}
