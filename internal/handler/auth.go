package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	tokenService *service.TokenService
	enrollKeys   []string
}

// NewAuthHandler creates a new auth handler. enrollKeys is the set of keys
// accepted for token issuance; an empty set disables the check (development).
func NewAuthHandler(tokenService *service.TokenService, enrollKeys []string) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		enrollKeys:   enrollKeys,
	}
}

// TokenRequest represents the request body for token generation. Identity
// proof beyond the enrollment key is the caller's concern; the signer is
// taken at its word and authorization happens per-record downstream.
type TokenRequest struct {
	Signer    model.Identity `json:"signer"`
	EnrollKey string         `json:"enroll_key"`
}

// TokenResponse represents the response for token generation.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GenerateToken handles POST /api/v1/auth/token
func (h *AuthHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := req.Signer.Validate(); err != nil {
		response.Error(w, apierror.BadRequest("signer is not a well-formed identity"))
		return
	}

	if len(h.enrollKeys) > 0 && !h.isValidEnrollKey(req.EnrollKey) {
		response.Error(w, apierror.Unauthorized("invalid enrollment key"))
		return
	}

	token, err := h.tokenService.GenerateToken(r.Context(), req.Signer)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to generate token"))
		return
	}

	response.OK(w, TokenResponse{
		Token:     token,
		ExpiresIn: int(service.TokenTTL.Seconds()),
	})
}

// RevokeToken handles POST /api/v1/auth/revoke
func (h *AuthHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if token == "" {
		response.Error(w, apierror.BadRequest("X-Token header required"))
		return
	}

	if err := h.tokenService.RevokeToken(r.Context(), token); err != nil {
		response.Error(w, apierror.InternalError("failed to revoke token"))
		return
	}

	response.OK(w, map[string]string{"status": "revoked"})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if token == "" {
		response.Error(w, apierror.BadRequest("X-Token header required"))
		return
	}

	if err := h.tokenService.RefreshToken(r.Context(), token); err != nil {
		response.Error(w, apierror.Unauthorized(err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"status":     "refreshed",
		"expires_in": int(service.TokenTTL.Seconds()),
	})
}

func (h *AuthHandler) isValidEnrollKey(key string) bool {
	for _, valid := range h.enrollKeys {
		if key == valid {
			return true
		}
	}
	return false
}
