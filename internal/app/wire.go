//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"
	"tubescribe/internal/api/server"
	"tubescribe/internal/config"
)

// InitializeServer builds the fully wired API server
func InitializeServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	wire.Build(
		provideObjectStore,
		provideFetcher,
		provideJobClient,
		provideMetrics,
		provideMaterializer,
		provideDocumentStore,
		provideOrchestrator,
		provideServiceContainer,
		provideServerConfig,
		server.NewServer,
	)
	return nil, nil
}
