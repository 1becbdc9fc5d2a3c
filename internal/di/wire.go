//go:build wireinject
// +build wireinject

package di

import (
	"StockScreener/pkg/config"
	"StockScreener/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaProducer,

		// Repositories
		ProvideFilterStore,
		ProvideTeamDirectory,
		ProvideCachedSnapshotStore,
		ProvideSnapshotStore,
		ProvideActivitySink,

		// Use cases
		ProvidePresetService,
		ProvideScreenService,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
