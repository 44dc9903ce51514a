package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apierrors "transcribe-ui/internal/api/errors"
	"transcribe-ui/internal/api/handlers"
	"transcribe-ui/internal/api/middleware"
	"transcribe-ui/internal/app/session"
)

// Config represents web front configuration
type Config struct {
	Addr        string
	ReadTimeout time.Duration
	IdleTimeout time.Duration
	Environment string
	// MaxUploadBytes bounds one POST /files body
	MaxUploadBytes int64
}

// Server represents the web front
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger

	// cancels uploads still in flight at shutdown
	cancel context.CancelFunc
}

// NewServer creates a new web front
func NewServer(
	config Config,
	sessions *session.Store,
	health handlers.HealthChecker,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	switch config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	baseCtx, cancel := context.WithCancel(context.Background())
	viewHandler := handlers.NewViewHandler(baseCtx, sessions, config.Environment == "production", config.MaxUploadBytes, logger)
	healthHandler := handlers.NewHealthHandler(health)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	router.GET("/", viewHandler.Page)
	router.POST("/files", viewHandler.SelectFiles)
	router.POST("/upload", viewHandler.Upload)
	router.POST("/search", viewHandler.Search)
	router.POST("/reset", viewHandler.Reset)

	router.NoRoute(func(c *gin.Context) {
		middleware.HandleError(c, apierrors.NewNotFoundError(c.Request.URL.Path))
	})

	api := router.Group("/api")
	{
		api.GET("/view", viewHandler.State)
	}

	httpServer := &http.Server{
		Addr:        config.Addr,
		Handler:     router,
		ReadTimeout: config.ReadTimeout,
		IdleTimeout: config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
		cancel:     cancel,
	}
}

// Run serves until ctx is done, then shuts down within shutdownTimeout
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web front",
			zap.String("address", s.httpServer.Addr),
			zap.String("environment", s.config.Environment),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.cancel()
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down web front...")
	defer s.cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("Web front shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
