package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/service"
	"github.com/minhokim/sejong-api/internal/service/auth"
	"github.com/minhokim/sejong-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	adminEmails map[string]bool
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// Accounts listed in adminEmails are issued admin tokens.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	adminEmails []string,
	logger *slog.Logger,
) *AuthHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for AuthHandler")
	}
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil for AuthHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = true
	}

	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		adminEmails: admins,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// roleFor maps an account email to the role its tokens carry.
func (h *AuthHandler) roleFor(email string) string {
	if h.adminEmails[strings.ToLower(email)] {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, h.roleFor(user.Email))
	if err != nil {
		log.Error("failed to generate token after registration",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID: user.ID,
		Token:  token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// The same response for unknown email and wrong password, so the
			// endpoint cannot be used to probe which emails are registered.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, h.roleFor(user.Email))
	if err != nil {
		log.Error("failed to generate token after login",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: user.ID,
		Token:  token,
	})
}
