// HTTP handler for the operator login (public endpoint, no AuthMiddleware).
package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	domainauth "github.com/matiasleandrokruk/folio/internal/domain/auth"
)

// AuthHandler exchanges the operator password for a JWT.
type AuthHandler struct {
	authService domainauth.AuthService
}

// NewAuthHandler creates a new AuthHandler backed by the provided AuthService.
func NewAuthHandler(authService domainauth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse is the response body returned after a successful login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Login handles POST /auth/login.
//
// Response codes:
//   - 200 OK: login successful
//   - 400 Bad Request: invalid JSON or missing password
//   - 401 Unauthorized: invalid credentials
//   - 500 Internal Server Error: token could not be issued
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	result, err := h.authService.Login(r.Context(), domainauth.LoginInput{
		Password: req.Password,
		RemoteIP: remoteIP(r),
	})
	if err != nil {
		if errors.Is(err, domainauth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}

// remoteIP strips the port; RealIP middleware has already applied proxy headers.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
