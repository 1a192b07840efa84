package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// ProtocolHandler handles protocol-level HTTP requests.
type ProtocolHandler struct {
	protocolService *service.ProtocolService
}

// NewProtocolHandler creates a new protocol handler.
func NewProtocolHandler(protocolService *service.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{protocolService: protocolService}
}

// Init handles POST /api/v1/protocol/init
func (h *ProtocolHandler) Init(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	protocol, err := h.protocolService.Init(r.Context(), signer)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, protocol)
}

// Get handles GET /api/v1/protocol
func (h *ProtocolHandler) Get(w http.ResponseWriter, r *http.Request) {
	protocol, err := h.protocolService.GetProtocol(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, protocol)
}

// ToggleLock handles POST /api/v1/protocol/lock
func (h *ProtocolHandler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	protocol, err := h.protocolService.ToggleLock(r.Context(), signer)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, protocol)
}

// AddAdminRequest represents the request body for admin creation.
type AddAdminRequest struct {
	Identity model.Identity `json:"identity"`
	Username string         `json:"username"`
}

// AddAdmin handles POST /api/v1/protocol/admins
func (h *ProtocolHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	profile, err := h.protocolService.AddAdmin(r.Context(), signer, req.Identity, req.Username)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, profile)
}

// RemoveAdmin handles DELETE /api/v1/protocol/admins/{identity}
func (h *ProtocolHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	target, apiErr := identityParam(r, "identity")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.protocolService.RemoveAdmin(r.Context(), signer, target); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
