package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/auth"
	"arkiv/internal/httputil"
)

// AuthHandler exchanges the configured admin key for a session JWT.
type AuthHandler struct {
	jwtSecret string
	adminKey  string
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtSecret, adminKey string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, adminKey: adminKey, logger: logger}
}

type tokenRequest struct {
	AdminKey string `json:"admin_key"`
	Operator string `json:"operator"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken issues a session token given the admin key
// POST /api/auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !auth.CheckAdminKey(h.adminKey, req.AdminKey) {
		h.logger.Warn("token request with bad admin key", "remote", r.RemoteAddr)
		httputil.RespondError(w, http.StatusUnauthorized, "invalid admin key")
		return
	}

	operator := req.Operator
	if operator == "" {
		operator = "archivist"
	}

	token, err := auth.GenerateToken(h.jwtSecret, operator)
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tokenResponse{Token: token})
}
