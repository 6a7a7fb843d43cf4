// Package handler provides HTTP handlers for the Filebridge API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/auth"
	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/metrics"
	"github.com/stratovia/filebridge/internal/service"
)

// RouterConfig contains the dependencies for the API router.
type RouterConfig struct {
	Handler  *ExchangeHandler
	Sessions auth.SessionResolver
	Logger   zerolog.Logger
}

// NewRouter assembles the chi router: public registration and login
// routes, plus file routes behind the bearer-token middleware with
// upload additionally gated on the operator role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	// Public routes.
	r.Get("/health", cfg.Handler.handleHealth)
	r.Post("/signup", cfg.Handler.handleSignup)
	r.Post("/verify", cfg.Handler.handleVerify)
	r.Post("/login", cfg.Handler.handleLogin)

	// Routes for any verified user.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Sessions, cfg.Logger))

		r.Get("/files", cfg.Handler.handleListFiles)
		r.Get("/download/{link}", cfg.Handler.handleDownload)

		// Operator-only routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(domain.RoleOperator))
			r.Post("/upload", cfg.Handler.handleUpload)
		})
	})

	return r
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a domain or service error onto a client-facing status.
// Every error in the taxonomy is recoverable by the caller; anything
// unrecognized is the server's fault and reports 500 without leaking
// internals.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrInvalidOrExpiredToken),
		errors.Is(err, domain.ErrInvalidLink):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrFileNotFound):
		status, message = http.StatusNotFound, err.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}
