package adaptor

import (
	"net/http"
	"strings"

	"paramount-autos/internal/dto/request"
	"paramount-autos/internal/usecase"
	"paramount-autos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// GetCatalog handles GET /api/vehicles (public)
func (h *VehicleHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	req := parseVehicleQuery(r)

	// only ?availableOnly=false widens the public catalog
	req.AvailableOnly = true
	if v := utils.ParseOptionalBool(r.URL.Query().Get("availableOnly")); v != nil {
		req.AvailableOnly = *v
	}

	vehicles, err := h.service.GetCatalog(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get catalog")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// GetVehicleByID handles GET /api/vehicles/{id} (public)
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	vehicle, err := h.service.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		handleServiceError(h.log, w, err, "get vehicle by ID")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// ==================== ADMIN METHODS ====================

// GetVehicles handles GET /api/admin/vehicles (admin only)
func (h *VehicleHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.GetVehicles(r.Context(), parseVehicleQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// CreateVehicle handles POST /api/admin/vehicles (admin only)
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vehicle, err := h.service.CreateVehicle(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "Vehicle created", vehicle)
}

// UpdateVehicle handles PUT /api/admin/vehicles/{id} (admin only)
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req request.UpdateVehicleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle updated", vehicle)
}

func parseVehicleQuery(r *http.Request) *request.VehicleListRequest {
	query := r.URL.Query()
	req := &request.VehicleListRequest{
		Availability: utils.ParseOptionalBool(query.Get("availability")),
		MinPrice:     utils.ParseOptionalInt64(query.Get("minPrice")),
		MaxPrice:     utils.ParseOptionalInt64(query.Get("maxPrice")),
		Search:       query.Get("search"),
	}
	if t := strings.TrimSpace(query.Get("type")); t != "" {
		req.Type = &t
	}
	return req
}
