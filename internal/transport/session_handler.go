package transport

import (
	"errors"
	"net/http"

	"storedesk/internal/middleware"
	"storedesk/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name" validate:"required,min=2"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse carries the session token and the signed-in profile
type SessionResponse struct {
	Token string          `json:"token"`
	User  service.Profile `json:"user"`
}

// SessionHandler handles signup and login
type SessionHandler struct {
	sessions service.SessionService
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers the auth routes. rateLimit is optional; pass nil
// to skip it (tests, no Redis configured).
func (h *SessionHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})
}

// Signup handles account creation
func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Signup validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, profile, err := h.sessions.Signup(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			middleware.RespondWithError(w, http.StatusConflict, "email already exists")
			return
		}
		h.logger.Error("Signup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign up")
		return
	}

	h.logger.Info("Account created", zap.String("email", profile.Email))
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{Token: token, User: *profile})
}

// Login handles authentication
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, profile, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Session started", zap.String("email", profile.Email))
	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{Token: token, User: *profile})
}
