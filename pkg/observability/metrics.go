package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	parses   *prometheus.CounterVec
	errors   *prometheus.CounterVec
	slots    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argot_parse_total",
				Help: "Total number of parse calls by outcome",
			},
			[]string{"outcome"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argot_parse_errors_total",
				Help: "Total number of failed parse calls by error kind",
			},
			[]string{"kind"},
		),
		slots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argot_slots_resolved_total",
				Help: "Total number of slots resolved by winning type",
			},
			[]string{"type"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "argot_parse_duration_seconds",
				Help:    "Duration of parse calls",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.parses, m.errors, m.slots, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlotResolved: func(_ context.Context, e *domain.SlotEvent) {
			if e.Skipped {
				return
			}
			m.slots.WithLabelValues(e.TypeName).Inc()
		},
		OnParseEnd: func(_ context.Context, e *domain.ParseEvent) {
			m.parses.WithLabelValues(e.Outcome()).Inc()
			m.duration.Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.errors.WithLabelValues(schema.Kind(e.Err)).Inc()
			}
		},
	}
}

// LogHooks returns lifecycle hooks that log every event at debug level,
// and failed parses at warn level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnParseStart: func(ctx context.Context, e *domain.ParseEvent) {
			logger.DebugContext(ctx, "parse started", "tokens", e.Tokens, "slots", e.Slots)
		},
		OnSlotResolved: func(ctx context.Context, e *domain.SlotEvent) {
			logger.DebugContext(ctx, "slot resolved",
				"slot", e.Slot,
				"position", e.Position,
				"type", e.TypeName,
				"skipped", e.Skipped,
			)
		},
		OnParseEnd: func(ctx context.Context, e *domain.ParseEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "parse failed",
					"kind", schema.Kind(e.Err),
					"duration", e.Duration,
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "parse finished", "values", e.Values, "duration", e.Duration)
		},
	}
}
