package wire

import (
	"paramount-autos/internal/adaptor"
	"paramount-autos/internal/data/repository"
	"paramount-autos/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVehicle(
	r chi.Router,
	vehicleHandler *adaptor.VehicleHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/vehicles", func(r chi.Router) {
		// GET /api/vehicles?availableOnly= - catalog, cheapest first
		r.Get("/", vehicleHandler.GetCatalog)
		r.Get("/{id}", vehicleHandler.GetVehicleByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/vehicles", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", vehicleHandler.GetVehicles)
		r.Post("/", vehicleHandler.CreateVehicle)
		r.Put("/{id}", vehicleHandler.UpdateVehicle)
	})
}
