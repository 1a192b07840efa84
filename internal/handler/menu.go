package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// MenuHandler handles menu catalog HTTP requests.
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// Add handles POST /api/v1/restaurants/{address}/menu
func (h *MenuHandler) Add(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var args service.MenuItemArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	item, err := h.menuService.AddItem(r.Context(), signer, address, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, item)
}

// Update handles PUT /api/v1/restaurants/{address}/menu/{sku}
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	sku, apiErr := uint64Param(r, "sku")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var args service.MenuItemArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()
	args.SKU = sku

	item, err := h.menuService.UpdateItem(r.Context(), signer, address, sku, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// ToggleRequest represents the request body for activating or retiring a
// menu item.
type ToggleRequest struct {
	Active bool `json:"active"`
}

// Toggle handles POST /api/v1/restaurants/{address}/menu/{sku}/toggle
func (h *MenuHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	sku, apiErr := uint64Param(r, "sku")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	item, err := h.menuService.ToggleItem(r.Context(), signer, address, sku, req.Active)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// Get handles GET /api/v1/restaurants/{address}/menu/{sku}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	sku, apiErr := uint64Param(r, "sku")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	item, err := h.menuService.GetItem(r.Context(), address, sku)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}
