//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"transcribe-ui/internal/api/server"
	"transcribe-ui/internal/config"
)

// InitializeServer wires the web front and everything it talks to
func InitializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(
		provideLogger,
		provideRegistry,
		provideMetrics,
		provideClient,
		provideSessionStore,
		provideServerConfig,
		provideServer,
	)
	return nil, nil, nil
}

// InitializeCLI wires the backend client used by the one-shot commands
func InitializeCLI(cfg *config.Config) (*CLI, func(), error) {
	wire.Build(
		provideLogger,
		provideCLIClient,
		wire.Struct(new(CLI), "*"),
	)
	return nil, nil, nil
}
