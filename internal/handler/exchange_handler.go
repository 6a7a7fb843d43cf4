// Package handler provides HTTP handlers for the Filebridge API.
package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/auth"
	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/service"
)

// ExchangeHandler handles the file exchange API: registration,
// verification, login, upload, listing, and download.
type ExchangeHandler struct {
	accounts      *service.AccountService
	verification  *service.VerificationService
	sessions      *service.SessionService
	files         *service.FileService
	validate      *validator.Validate
	maxUploadSize int64
	logger        zerolog.Logger
}

// ExchangeConfig contains the dependencies for the exchange handler.
type ExchangeConfig struct {
	Accounts      *service.AccountService
	Verification  *service.VerificationService
	Sessions      *service.SessionService
	Files         *service.FileService
	MaxUploadSize int64
	Logger        zerolog.Logger
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(cfg ExchangeConfig) *ExchangeHandler {
	return &ExchangeHandler{
		accounts:      cfg.Accounts,
		verification:  cfg.Verification,
		sessions:      cfg.Sessions,
		files:         cfg.Files,
		validate:      validator.New(),
		maxUploadSize: cfg.MaxUploadSize,
		logger:        cfg.Logger.With().Str("handler", "exchange").Logger(),
	}
}

// =============================================================================
// Request/Response DTOs
// =============================================================================

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
}

type signupResponse struct {
	Message string `json:"message"`
}

type verifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type verifyResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Link     string `json:"link"`
}

type listFilesResponse struct {
	User  string              `json:"user"`
	Files []service.FileEntry `json:"files"`
}

// =============================================================================
// Handlers
// =============================================================================

func (h *ExchangeHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleSignup registers a new account and issues its verification
// token. The token travels by notifier, never in the response; notifier
// failure does not fail the signup.
func (h *ExchangeHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	output, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.verification.Issue(r.Context(), service.IssueInput{
		Username: output.Account.Username,
		Email:    output.Account.Email,
	}); err != nil {
		h.logger.Error().Err(err).Str("username", req.Username).Msg("failed to issue verification token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{
		Message: "registered; check your email for a verification token",
	})
}

// handleVerify redeems a verification token.
func (h *ExchangeHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	username, err := h.verification.Redeem(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Message:  "account verified",
		Username: username,
	})
}

// handleLogin checks credentials and mints a session token.
func (h *ExchangeHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	output, err := h.sessions.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: output.Token})
}

// handleUpload stores a document from a multipart form. The route is
// behind RequireRole(operator); by the time this runs the caller is an
// authenticated operator.
func (h *ExchangeHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "multipart form field 'file' is required"})
		return
	}
	defer file.Close()

	if err := h.files.Upload(r.Context(), service.UploadInput{
		Filename: header.Filename,
		Content:  file,
	}); err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.files.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := uploadResponse{
		Message:  "file uploaded successfully",
		Filename: header.Filename,
	}
	for _, entry := range entries {
		if entry.Name == header.Filename {
			resp.Link = entry.Link
			break
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleListFiles lists stored files with their share links.
func (h *ExchangeHandler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.files.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listFilesResponse{
		User:  identity.Username,
		Files: entries,
	})
}

// handleDownload decodes a share link and streams the file.
func (h *ExchangeHandler) handleDownload(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "link")

	output, err := h.files.Download(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	defer output.Content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": output.Filename})
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, output.Content); err != nil {
		h.logger.Error().Err(err).Str("filename", output.Filename).Msg("failed to stream file")
	}
}

// =============================================================================
// Helpers
// =============================================================================

// decodeAndValidate decodes a JSON body into dst and validates it.
// Writes a 400 and returns false on any failure.
func (h *ExchangeHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return false
	}

	return true
}
