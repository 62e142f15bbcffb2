// Package observability turns walkthrough lifecycle events into Prometheus metrics.
package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the walkthrough collectors.
type Metrics struct {
	StepsShown     *prometheus.CounterVec
	StepsSkipped   *prometheus.CounterVec
	ToursCompleted *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		StepsShown: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walkthrough_steps_shown_total",
				Help: "Total number of tooltips shown",
			},
			[]string{"mode", "target"},
		),
		StepsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walkthrough_steps_skipped_total",
				Help: "Total number of steps skipped because their target was absent",
			},
			[]string{"mode", "target"},
		),
		ToursCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walkthrough_tours_completed_total",
				Help: "Total number of tours that reached the end",
			},
			[]string{"mode"},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.StepsShown, m.StepsSkipped, m.ToursCompleted} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			m.StepsShown.WithLabelValues(string(e.Mode), string(e.Target)).Inc()
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			m.StepsSkipped.WithLabelValues(string(e.Mode), string(e.Target)).Inc()
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			m.ToursCompleted.WithLabelValues(string(e.Mode)).Inc()
		},
	}
}

// LogHooks returns hooks that write every event to logger at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Step entered", "mode", e.Mode, "index", e.Index, "target", e.Target)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Step left", "mode", e.Mode, "index", e.Index, "target", e.Target)
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Step skipped", "mode", e.Mode, "index", e.Index, "target", e.Target)
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			logger.DebugContext(ctx, "Tour finished", "mode", e.Mode, "shown", e.Shown, "skipped", e.Skipped)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range all {
				if h.OnStepEnter != nil {
					h.OnStepEnter(ctx, e)
				}
			}
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range all {
				if h.OnStepLeave != nil {
					h.OnStepLeave(ctx, e)
				}
			}
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range all {
				if h.OnStepSkipped != nil {
					h.OnStepSkipped(ctx, e)
				}
			}
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			for _, h := range all {
				if h.OnFinish != nil {
					h.OnFinish(ctx, e)
				}
			}
		},
	}
}
