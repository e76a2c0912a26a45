package bootstrap

import (
	"appointment-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	MetricsModule,
	components.PersistenceModule,
	components.EngineModule,
)
