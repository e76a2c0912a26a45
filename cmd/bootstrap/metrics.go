package bootstrap

import (
	"appointment-engine/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		prometheus.NewRegistry,
		func(reg *prometheus.Registry) *metrics.EngineMetrics {
			return metrics.NewEngineMetrics(reg)
		},
	),
)
