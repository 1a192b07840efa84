package handler

import (
	"encoding/json"
	"net/http"

	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
	"hestia-ledger-api/pkg/response"
)

// RestaurantHandler handles restaurant and staff HTTP requests.
type RestaurantHandler struct {
	restaurantService *service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(restaurantService *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// CreateRestaurantResponse carries the created record plus its derived address,
// which the client needs for every tenant-scoped call that follows.
type CreateRestaurantResponse struct {
	Address    string      `json:"address"`
	Restaurant interface{} `json:"restaurant"`
}

// Create handles POST /api/v1/restaurants
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	signer, apiErr := signerOf(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var args service.CreateRestaurantArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	restaurant, address, err := h.restaurantService.Initialize(r.Context(), signer, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, CreateRestaurantResponse{
		Address:    string(address),
		Restaurant: restaurant,
	})
}

// Get handles GET /api/v1/restaurants/{address}
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, apiErr := addressParam(r, "address")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	restaurant, err := h.restaurantService.GetRestaurant(r.Context(), address)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, restaurant)
}

// AddEmployee handles POST /api/v1/restaurants/{address}/employees
func (h *RestaurantHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
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

	var args service.AddEmployeeArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	employee, err := h.restaurantService.AddEmployee(r.Context(), signer, address, args)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, employee)
}

// PromoteEmployeeRequest represents the request body for a role change.
type PromoteEmployeeRequest struct {
	Role uint8 `json:"role"`
}

// PromoteEmployee handles PUT /api/v1/restaurants/{address}/employees/{wallet}
func (h *RestaurantHandler) PromoteEmployee(w http.ResponseWriter, r *http.Request) {
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

	wallet, apiErr := identityParam(r, "wallet")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req PromoteEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	employee, err := h.restaurantService.PromoteEmployee(r.Context(), signer, address, wallet, req.Role)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, employee)
}

// RemoveEmployee handles DELETE /api/v1/restaurants/{address}/employees/{wallet}
func (h *RestaurantHandler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
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

	wallet, apiErr := identityParam(r, "wallet")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.restaurantService.RemoveEmployee(r.Context(), signer, address, wallet); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
