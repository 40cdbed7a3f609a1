// Package server defines the Server container that composes the app's
// shared dependencies and owns the HTTP server lifecycle.
//
// It owns:
//   - configuration and loggers
//   - the document store backend (memory, PostgreSQL or MongoDB)
//   - the optional Redis client and background job service
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/web420-api/internal/config"
	"github.com/deppfellow/web420-api/internal/database"
	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/web420-api/internal/logger"
)

// Server is the application container that holds shared resources.
// Everything on it is created once at startup and only read afterwards.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Store is the document store every repository reads and writes.
	Store docstore.Backend

	// DB is set only when the store runs on PostgreSQL.
	DB *database.Database

	// Redis is nil when no address is configured.
	Redis *redis.Client

	// Job is nil unless both Redis and Resend are configured.
	Job *job.JobService

	httpServer *http.Server
}

// New connects the configured store, Redis and job service.
// It does not start the HTTP server; see SetupHTTPServer and Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if err := server.connectStore(); err != nil {
		return nil, err
	}

	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Redis only backs optional features, so a failed ping is not fatal.
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
		}

		server.Redis = redisClient
	}

	if cfg.JobsEnabled() {
		jobService := job.NewJobService(logger, cfg)
		jobService.InitHandlers(cfg, logger)

		if err := jobService.Start(); err != nil {
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		server.Job = jobService
	} else {
		logger.Info().Msg("background jobs disabled, redis address or resend api key missing")
	}

	return server, nil
}

func (s *Server) connectStore() error {
	switch s.Config.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.New(s.Config, s.Logger, s.LoggerService)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
		s.Store = docstore.NewPostgres(db.Pool)

	case config.StoreDriverMongo:
		mongoDB, err := database.NewMongo(s.Config, s.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize mongo: %w", err)
		}
		s.Store = docstore.NewMongo(mongoDB)

	default:
		s.Logger.Warn().Msg("using the in-memory document store, data is lost on restart")
		s.Store = docstore.NewMemory()
	}

	s.Logger.Info().Str("driver", s.Config.Store.Driver).Msg("document store ready")
	return nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, then background jobs, then the
// store and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	} else if s.Store != nil {
		if err := s.Store.Close(ctx); err != nil {
			return fmt.Errorf("failed to close document store: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
