package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dinas-portal/internal/handler/http/payload"
	"dinas-portal/internal/handler/http/requestid"
	"dinas-portal/internal/handler/http/respond"
)

// Authenticator resolves credentials to a role.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (string, error)
}

// TokenResponse is the body returned by the token endpoint.
type TokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenHandler authenticates the admin and issues a JWT.
type TokenHandler struct {
	Issuer   *Issuer
	Accounts Authenticator
}

// ServeHTTP
// @Summary      Issue admin token
// @Description  Exchanges the admin username and password for a Bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body Credentials true "Admin credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} map[string]string "Malformed body"
// @Failure      401 {object} map[string]string "Invalid credentials"
// @Failure      404 {object} map[string]string "Authentication disabled"
// @Router       /auth/token [post]
func (h TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	if h.Issuer == nil || h.Accounts == nil {
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "authentication is not enabled"})
		return
	}

	var creds Credentials
	if err := payload.Decode(r, &creds); err != nil {
		recordAuthRequest("unknown", "failure", time.Since(start))
		respond.FromError(w, err)
		return
	}

	role, err := h.Accounts.Authenticate(r.Context(), creds)
	if err != nil {
		logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
		recordAuthRequest("unknown", "failure", time.Since(start))
		respond.SafeError(w, http.StatusUnauthorized, err)
		return
	}

	signed, exp, err := h.Issuer.Issue(creds.Username, role)
	if err != nil {
		recordAuthRequest(role, "failure", time.Since(start))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("authentication successful", slog.String("user", creds.Username), slog.String("role", role))
	recordAuthRequest(role, "success", time.Since(start))
	respond.JSON(w, http.StatusOK, TokenResponse{Token: signed, ExpiresAt: exp})
}
