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
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Recorder at construction time.
type Option func(*Recorder) error

// WithPrometheus selects the Prometheus provider (the default). Expose
// Recorder.PrometheusHandler on a scrape endpoint.
func WithPrometheus() Option {
	return func(r *Recorder) error {
		r.provider = PrometheusProvider

		return nil
	}
}

// WithOTLP selects the OTLP/HTTP provider. An http:// endpoint disables TLS;
// an empty endpoint falls back to the exporter's environment configuration.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) error {
		r.provider = OTLPProvider
		r.otlpEndpoint = endpoint

		return nil
	}
}

// WithStdout selects the stdout provider, for development.
func WithStdout() Option {
	return func(r *Recorder) error {
		r.provider = StdoutProvider

		return nil
	}
}

// WithMeterProvider supplies a custom meter provider. Its lifecycle stays
// with the caller; Recorder.Shutdown will not touch it.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) error {
		if mp == nil {
			return errors.New("meter provider must not be nil")
		}
		r.meterProvider = mp

		return nil
	}
}

// WithDurationBuckets replaces the histogram boundaries for dispatch
// duration, in seconds.
func WithDurationBuckets(buckets []float64) Option {
	return func(r *Recorder) error {
		if len(buckets) == 0 {
			return errors.New("duration buckets must not be empty")
		}
		r.durationBuckets = buckets

		return nil
	}
}

// WithLogger sets the logger for provider setup messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		r.logger = logger

		return nil
	}
}
