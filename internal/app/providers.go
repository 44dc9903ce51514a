package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"transcribe-ui/internal/api/server"
	"transcribe-ui/internal/app/api/backend"
	"transcribe-ui/internal/app/logger"
	"transcribe-ui/internal/app/session"
	"transcribe-ui/internal/config"
)

// CLI bundles what the one-shot commands need
type CLI struct {
	Client *backend.Client
	Logger *zap.Logger
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.NewLogger(!cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *backend.Metrics {
	return backend.NewMetrics(reg)
}

func provideClient(cfg *config.Config, metrics *backend.Metrics, logger *zap.Logger) *backend.Client {
	return backend.NewClient(backend.ClientConfig{
		BaseURL: cfg.APIURL,
		Metrics: metrics,
		Logger:  logger,
	})
}

func provideSessionStore(client *backend.Client, cfg *config.Config, logger *zap.Logger) *session.Store {
	return session.NewStore(client, cfg.SessionTTL, logger)
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Addr:        cfg.Addr(),
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
		Environment: cfg.Environment,

		MaxUploadBytes: cfg.MaxUploadBytes,
	}
}

func provideServer(sc server.Config, sessions *session.Store, client *backend.Client, reg *prometheus.Registry, logger *zap.Logger) *server.Server {
	return server.NewServer(sc, sessions, client, reg, logger)
}

// provideCLIClient builds a client without metrics; one-shot commands have nothing to scrape them
func provideCLIClient(cfg *config.Config, logger *zap.Logger) *backend.Client {
	return backend.NewClient(backend.ClientConfig{
		BaseURL: cfg.APIURL,
		Logger:  logger,
	})
}
