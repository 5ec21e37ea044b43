package app

import (
	"fmt"
	"net/http"

	"github.com/gridironhq/playerboard/external/pfr"
	"github.com/gridironhq/playerboard/external/sleeper"
	"github.com/gridironhq/playerboard/internal/config"
	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
	"github.com/gridironhq/playerboard/internal/infrastructure/repository/postgres"
	"github.com/gridironhq/playerboard/internal/interfaces/httpapi"
	"github.com/gridironhq/playerboard/internal/platform/cache"
	"github.com/gridironhq/playerboard/internal/platform/logging"
	"github.com/gridironhq/playerboard/internal/platform/resilience"
	"github.com/gridironhq/playerboard/internal/usecase"
)

// NewHTTPServer wires feed clients, services and the HTTP router. The
// returned closer releases the archive DB connection when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	closer := func() error { return nil }

	var archive rawfeed.Repository
	if cfg.ArchiveEnabled {
		db, err := openArchiveDB(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive db: %w", err)
		}
		archive = postgres.NewRawFeedRepository(db)
		closer = db.Close
	}

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
		Archive: archive,
	})

	pfrClient := pfr.NewClient(pfr.ClientConfig{
		BaseURL:    cfg.PFRBaseURL,
		UserAgent:  cfg.PFRUserAgent,
		Timeout:    cfg.PFRTimeout,
		MaxRetries: cfg.PFRMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PFRCircuitEnabled,
			FailureThreshold: cfg.PFRCircuitFailureCount,
			OpenTimeout:      cfg.PFRCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PFRCircuitHalfOpenMaxReq,
		},
		Archive: archive,
	})

	boardService := usecase.NewBoardService(sleeperClient, pfrClient, cache.NewStore(cfg.CacheTTL), logger)

	handler := httpapi.NewHandler(
		boardService,
		usecase.NewDirectoryService(sleeperClient),
		usecase.NewStatService(pfrClient),
		usecase.NewRefreshService(boardService, logger),
		usecase.NewArchiveService(archive),
		cfg.DefaultSeason,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closer()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}
