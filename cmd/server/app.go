package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/minhokim/sejong-api/internal/config"
	"github.com/minhokim/sejong-api/internal/domain/progress"
	"github.com/minhokim/sejong-api/internal/domain/srs"
	"github.com/minhokim/sejong-api/internal/events"
	"github.com/minhokim/sejong-api/internal/generation"
	"github.com/minhokim/sejong-api/internal/platform/docstore"
	"github.com/minhokim/sejong-api/internal/platform/gemini"
	"github.com/minhokim/sejong-api/internal/platform/postgres"
	"github.com/minhokim/sejong-api/internal/service"
	"github.com/minhokim/sejong-api/internal/service/auth"
	"github.com/minhokim/sejong-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	kv            store.KV
	userStore     store.UserStore
	deckStore     store.DeckStore
	progressStore store.ProgressStore

	// Service interfaces
	jwtService      auth.JWTService
	userService     service.UserService
	srsService      srs.Service
	deckService     service.DeckService
	progressService service.ProgressService
	questService    service.QuestService

	// Gamification tuning shared by progress service and leaderboard
	progressParams *progress.Params

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Document store backend
	kv, err := setupKV(cfg, logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}
	app.kv = kv
	app.deckStore = docstore.NewDeckStore(kv, logger)
	app.progressStore = docstore.NewProgressStore(kv, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	logger.Info("stores initialized", slog.String("backend", cfg.Store.Backend))

	// Authentication
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)

	// Domain services
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.srsService = srs.NewDefaultService()
	app.progressParams = progress.NewDefaultParams()

	app.deckService = service.NewDeckService(app.deckStore, app.srsService, logger)
	app.progressService = service.NewProgressService(
		app.progressStore,
		app.progressParams,
		app.eventEmitter,
		logger,
	)

	// Quest generation is optional: without an API key the service falls
	// back to the static quest set.
	var generator generation.QuestGenerator
	if cfg.LLM.GeminiAPIKey != "" {
		geminiGenerator, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize quest generator: %w", err)
		}
		generator = geminiGenerator
		logger.Info("quest generator initialized", slog.String("model", cfg.LLM.ModelName))
	} else {
		logger.Warn("no Gemini API key configured, weekly quests will use the static set")
	}
	app.questService = service.NewQuestService(generator, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The database
// connection is owned by run() and closed there.
func (app *application) cleanup() {
	app.logger.Info("application shutdown completed")
}
