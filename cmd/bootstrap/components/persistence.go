package components

import (
	"log/slog"

	"appointment-engine/internal/infra/cache"
	"appointment-engine/internal/infra/readstore"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/availability"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	cacheModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(availability.BookingStore)),
		),
		fx.Annotate(
			readstore.NewCalendarReadStore,
			fx.As(new(availability.CalendarStore)),
		),
		fx.Annotate(
			readstore.NewAppointmentTypeReadStore,
			fx.As(new(availability.AppointmentTypeStore)),
		),
	),
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		NewSelectionCache,
	),
)

func NewDBTX(pool *pgxpool.Pool) readstore.DBTX {
	return pool
}

// NewSelectionCache returns a nil cache when Redis is disabled.
func NewSelectionCache(client *redis.Client, cfg config.Config, logger *slog.Logger) availability.SelectionCache {
	if client == nil {
		return nil
	}
	return cache.NewSelectionCache(client, cfg.Redis.SelectionCacheTTL, logger)
}
