package handler

import (
	"careerai/internal/model"
	"careerai/internal/service"
	"careerai/internal/transport/rest/middleware"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc     *service.AuthService
	broadcaster service.Broadcaster
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler. Open push connections are dropped on logout.
func NewAuthHandler(authSvc *service.AuthService, broadcaster service.Broadcaster, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, broadcaster: broadcaster, logger: logger}
}

// Signup handles POST /v1/auth/signup
// @Summary Create an account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.CredentialsRequest true "Credentials"
// @Success 201 {object} model.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	setSessionCookie(w, resp.Token, resp.ExpiresAt)
	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /v1/auth/login
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.CredentialsRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	setSessionCookie(w, resp.Token, resp.ExpiresAt)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if err := h.authSvc.Logout(r.Context(), claims); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.broadcaster.DisconnectUser(claims.UserID)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusOK, model.SessionInfo{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, model.SessionInfo{
		Authenticated: true,
		UserID:        claims.UserID,
		Email:         claims.Email,
	})
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
