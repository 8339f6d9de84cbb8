package adaptor

import (
	"paramount-autos/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Vehicle   *VehicleHandler
	Booking   *BookingHandler
	Analytics *AnalyticsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Vehicle:   NewVehicleHandler(service.Vehicle, log),
		Booking:   NewBookingHandler(service.Booking, service.Tracking, log),
		Analytics: NewAnalyticsHandler(service.Analytics, log),
	}
}
