package usecase

import (
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/pricing"
	"paramount-autos/pkg/notify"
	"paramount-autos/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Vehicle   VehicleService
	Booking   BookingService
	Tracking  TrackingService
	Analytics AnalyticsService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, log *zap.Logger) *Service {
	calc := pricing.NewCalculator(config.Booking.SecurityRate)

	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Vehicle:   NewVehicleService(repo.Vehicle, log),
		Booking:   NewBookingService(repo, calc, notifier, config.Booking, log),
		Tracking:  NewTrackingService(repo.Booking, log),
		Analytics: NewAnalyticsService(repo, log),
	}
}
