// Copyright 2026 The BhashAI Authors
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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter wraps the OpenTelemetry meter plus the platform's call
// dispatch instruments.
type Meter struct {
	meter metric.Meter

	callsDispatched metric.Int64Counter
	callsFailed     metric.Int64Counter
	dispatchSeconds metric.Float64Histogram
}

// New creates a new meter instance
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	var meter metric.Meter
	if !cfg.Enabled {
		meter = otel.Meter("noop")
	} else {
		// Meter provider configuration (exporters etc.) comes from the
		// global provider set up by the process.
		meter = otel.Meter(serviceName)
	}

	m := &Meter{meter: meter}

	var err error
	m.callsDispatched, err = meter.Int64Counter(
		"bhashai.calls.dispatched",
		metric.WithDescription("Outbound call attempts handed to the voice vendor"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	m.callsFailed, err = meter.Int64Counter(
		"bhashai.calls.failed",
		metric.WithDescription("Outbound call attempts rejected by the voice vendor"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	m.dispatchSeconds, err = meter.Float64Histogram(
		"bhashai.calls.dispatch_duration",
		metric.WithDescription("Wall time of one bulk dispatch batch"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return m, nil
}

// GetMeter returns the underlying meter
func (m *Meter) GetMeter() metric.Meter {
	return m.meter
}

// RecordDispatch records the outcome counts and duration of one batch.
func (m *Meter) RecordDispatch(ctx context.Context, agentID string, succeeded, failed int64, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("voice_agent_id", agentID))
	m.callsDispatched.Add(ctx, succeeded, attrs)
	m.callsFailed.Add(ctx, failed, attrs)
	m.dispatchSeconds.Record(ctx, seconds, attrs)
}
