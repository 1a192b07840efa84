package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place handles POST /api/v1/restaurants/{address}/orders
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
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

	var args service.PlaceOrderArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	order, err := h.orderService.PlaceOrder(r.Context(), signer, address, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, order)
}

// UpdateOrderRequest represents the request body for a status transition.
type UpdateOrderRequest struct {
	Customer model.Identity `json:"customer"`
	Status   uint8          `json:"status"`
}

// Update handles PUT /api/v1/restaurants/{address}/orders/{order_id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	orderID, apiErr := uint64Param(r, "order_id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	order, err := h.orderService.UpdateOrder(r.Context(), signer, address, orderID, req.Customer, req.Status)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, order)
}

// CancelOrderRequest represents the request body for an order cancellation.
type CancelOrderRequest struct {
	Customer model.Identity `json:"customer"`
}

// Cancel handles POST /api/v1/restaurants/{address}/orders/{order_id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	orderID, apiErr := uint64Param(r, "order_id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	order, err := h.orderService.CancelOrder(r.Context(), signer, address, orderID, req.Customer)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, order)
}

// Get handles GET /api/v1/restaurants/{address}/orders/{order_id}?customer=...
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	orderID, apiErr := uint64Param(r, "order_id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	customer := model.Identity(r.URL.Query().Get("customer"))
	if err := customer.Validate(); err != nil {
		response.Error(w, apierror.BadRequest("customer query parameter is required"))
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), address, orderID, customer)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, order)
}
