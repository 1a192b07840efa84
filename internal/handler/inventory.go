package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// InventoryHandler handles inventory HTTP requests.
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Upsert handles PUT /api/v1/restaurants/{address}/inventory/{sku}
func (h *InventoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
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

	var args service.UpsertInventoryArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()
	args.SKU = sku

	item, err := h.inventoryService.Upsert(r.Context(), signer, address, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// Remove handles DELETE /api/v1/restaurants/{address}/inventory/{sku}
func (h *InventoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.inventoryService.Remove(r.Context(), signer, address, sku); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

// Get handles GET /api/v1/restaurants/{address}/inventory/{sku}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.inventoryService.GetItem(r.Context(), address, sku)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}
