package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"carreto-freight-api/internal/auth/models"
	"carreto-freight-api/internal/auth/services"
	"carreto-freight-api/pkg/middleware"
	"carreto-freight-api/pkg/response"
)

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	auth   *services.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Demo sign-in. Credentials mentioning "motorista" or "driver" get the driver role; everything else signs in as a client.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.LoginRequest	true	"Credentials"
//	@Success		200		{object}	models.LoginResponse
//	@Failure		401		{object}	response.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, response.ValidationError("body", "invalid request format"))
		return
	}

	resp, err := h.auth.Login(req.Credential, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid credentials")
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		response.InternalError(w, "failed to sign in")
		return
	}

	h.logger.Info("user signed in", slog.String("role", resp.Role), slog.String("session_id", resp.SessionID))
	response.Success(w, resp)
}

// Guest godoc
//
//	@Summary		Start an anonymous session
//	@Description	Issues a client session token without credentials, so a quote can be drafted before signing in.
//	@Tags			auth
//	@Produce		json
//	@Success		201	{object}	models.LoginResponse
//	@Router			/auth/guest [post]
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	resp, err := h.auth.Guest()
	if err != nil {
		h.logger.Error("guest session failed", slog.String("error", err.Error()))
		response.InternalError(w, "failed to start session")
		return
	}

	h.logger.Info("guest session started", slog.String("session_id", resp.SessionID))
	response.Created(w, resp)
}

// Logout godoc
//
//	@Summary		Sign out
//	@Description	Drops the session; the token stops working immediately.
//	@Tags			auth
//	@Success		204
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}
	h.auth.Logout(claims.SessionID)
	response.NoContent(w)
}
