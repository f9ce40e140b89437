// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry metric instruments of the decode
// pipeline.
//
// Instruments are created from a [metric.MeterProvider]. [DefaultMetrics]
// uses the global provider, which is a no-op until the host installs one;
// tests should use [NewMetrics] with an SDK provider and a ManualReader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/ik5/pcmdecoder"

// Drop reasons recorded by RecordDrop.
const (
	DropForeignTrack = "foreign_track"
	DropTransient    = "transient"
	DropReset        = "reset"
	DropZeroChannels = "zero_channels"
)

// Metrics holds the pipeline instruments. All fields are safe for
// concurrent use.
type Metrics struct {
	// DecodeDuration tracks wall time of a whole decode. Use with attributes:
	//   attribute.String("format", ...), attribute.String("status", ...)
	DecodeDuration metric.Float64Histogram

	// Decodes counts decode calls by format and status.
	Decodes metric.Int64Counter

	// PacketsDropped counts packets the packet loop skipped. Use with
	// attribute.String("reason", ...).
	PacketsDropped metric.Int64Counter

	// DecoderResets counts decoder resets requested by adapters.
	DecoderResets metric.Int64Counter

	// SamplesOut counts samples written to buffer slots.
	SamplesOut metric.Int64Counter

	// BufferedSamples tracks samples currently held across all slots.
	BufferedSamples metric.Int64UpDownCounter
}

var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates the instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.DecodeDuration, err = m.Float64Histogram("pcmdecoder.decode.duration",
		metric.WithDescription("Latency of a full decode from bytes to PCM buffer."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Decodes, err = m.Int64Counter("pcmdecoder.decodes",
		metric.WithDescription("Total decode calls by format and status."),
	); err != nil {
		return nil, err
	}
	if met.PacketsDropped, err = m.Int64Counter("pcmdecoder.packets.dropped",
		metric.WithDescription("Packets skipped by the packet loop by reason."),
	); err != nil {
		return nil, err
	}
	if met.DecoderResets, err = m.Int64Counter("pcmdecoder.decoder.resets",
		metric.WithDescription("Decoder resets requested by codec adapters."),
	); err != nil {
		return nil, err
	}
	if met.SamplesOut, err = m.Int64Counter("pcmdecoder.samples.out",
		metric.WithDescription("Samples produced into buffer slots."),
	); err != nil {
		return nil, err
	}

	if met.BufferedSamples, err = m.Int64UpDownCounter("pcmdecoder.buffered_samples",
		metric.WithDescription("Samples currently cached in buffer slots."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] built on
// [otel.GetMeterProvider] on first call.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordDecode records one finished decode.
func (m *Metrics) RecordDecode(ctx context.Context, format, status string, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	)
	m.Decodes.Add(ctx, 1, attrs)
	m.DecodeDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordDrop records one skipped packet.
func (m *Metrics) RecordDrop(ctx context.Context, reason string) {
	m.PacketsDropped.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}

// RecordSlot records a slot change from prev to next samples.
func (m *Metrics) RecordSlot(ctx context.Context, prev, next int) {
	if next > 0 {
		m.SamplesOut.Add(ctx, int64(next))
	}
	if d := int64(next - prev); d != 0 {
		m.BufferedSamples.Add(ctx, d)
	}
}
