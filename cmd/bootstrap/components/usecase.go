package components

import (
	"log/slog"

	"appointment-engine/internal/observability/metrics"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/availability"

	"go.uber.org/fx"
)

var EngineModule = fx.Module("usecase/availability",
	fx.Provide(
		clock.NewRealClock,
		NewEngine,
	),
)

type EngineParams struct {
	fx.In

	Config    config.Config
	Bookings  availability.BookingStore
	Calendars availability.CalendarStore
	Cache     availability.SelectionCache
	Clock     clock.Clock
	Logger    *slog.Logger
	Metrics   *metrics.EngineMetrics
}

func NewEngine(p EngineParams) (availability.Engine, error) {
	opts, err := availability.OptionsFromConfig(p.Config.Engine)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		availability.WithClock(p.Clock),
		availability.WithLogger(p.Logger),
		availability.WithMetrics(p.Metrics),
	)
	if p.Cache != nil {
		opts = append(opts, availability.WithSelectionCache(p.Cache))
	}
	return availability.NewEngine(p.Bookings, p.Calendars, opts...), nil
}
