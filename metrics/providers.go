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
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider selects the metrics backend.
type Provider string

const (
	// PrometheusProvider exports through a private Prometheus registry,
	// exposed via Recorder.PrometheusHandler.
	PrometheusProvider Provider = "prometheus"

	// OTLPProvider pushes metrics over OTLP/HTTP.
	OTLPProvider Provider = "otlp"

	// StdoutProvider prints metrics to stdout, for development.
	StdoutProvider Provider = "stdout"
)

// initializeProvider wires the configured backend and creates instruments.
func (r *Recorder) initializeProvider() error {
	if r.meterProvider != nil {
		r.logger.Debug("using user-supplied meter provider")
		r.meter = r.meterProvider.Meter(meterName)

		return r.initializeMetrics()
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case OTLPProvider:
		return r.initOTLPProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

func (r *Recorder) initPrometheusProvider() error {
	// A private registry avoids collisions with the process-global one.
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("create Prometheus exporter: %w", err)
	}

	r.ownedProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.meterProvider = r.ownedProvider

	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	r.meter = r.meterProvider.Meter(meterName)

	return r.initializeMetrics()
}

func (r *Recorder) initOTLPProvider() error {
	opts := []otlpmetrichttp.Option{}

	if r.otlpEndpoint != "" {
		endpoint := r.otlpEndpoint
		insecure := false

		if strings.HasPrefix(endpoint, "http://") {
			endpoint = strings.TrimPrefix(endpoint, "http://")
			insecure = true
		} else if strings.HasPrefix(endpoint, "https://") {
			endpoint = strings.TrimPrefix(endpoint, "https://")
		}

		opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("create OTLP exporter: %w", err)
	}

	r.ownedProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	r.meterProvider = r.ownedProvider
	r.meter = r.meterProvider.Meter(meterName)

	return r.initializeMetrics()
}

func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("create stdout exporter: %w", err)
	}

	r.ownedProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	r.meterProvider = r.ownedProvider
	r.meter = r.meterProvider.Meter(meterName)

	return r.initializeMetrics()
}
