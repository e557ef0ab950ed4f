package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/minhokim/sejong-api/internal/api"
	apiMiddleware "github.com/minhokim/sejong-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// API handlers built from the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth.AdminEmails, app.logger)
	deckHandler := api.NewDeckHandler(app.deckService, app.progressService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService, app.logger)
	leaderboardHandler := api.NewLeaderboardHandler(
		app.userService,
		app.progressService,
		app.progressParams,
		app.logger,
	)
	questHandler := api.NewQuestHandler(app.questService, app.logger)
	adminHandler := api.NewAdminHandler(app.deckService, app.progressService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Deck endpoints
			r.Get("/deck", deckHandler.GetDeck)
			r.Get("/deck/due", deckHandler.GetDueEntries)
			r.Post("/deck/words", deckHandler.AddWords)
			r.Delete("/deck/words/{word}", deckHandler.RemoveWord)
			r.Post("/deck/review", deckHandler.RecordReview)

			// Progress endpoints
			r.Get("/progress", progressHandler.GetProgress)
			r.Post("/progress/xp", progressHandler.AddXP)
			r.Post("/progress/quiz", progressHandler.RecordQuiz)
			r.Post("/progress/roleplay", progressHandler.RecordRolePlay)
			r.Post("/progress/quests/{id}/complete", progressHandler.CompleteQuest)
			r.Get("/progress/levels/{level}", progressHandler.GetLevelXP)

			// Leaderboard and quests
			r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
			r.Post("/quests/generate", questHandler.GenerateQuests)

			// Admin endpoints, restricted to admin tokens
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)
				r.Delete("/admin/users/{id}/data", adminHandler.ResetUserData)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
