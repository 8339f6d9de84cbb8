package wire

import (
	"paramount-autos/internal/adaptor"
	"paramount-autos/internal/data/repository"
	"paramount-autos/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAnalytics(
	r chi.Router,
	analyticsHandler *adaptor.AnalyticsHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/api/admin/dashboard", analyticsHandler.GetDashboard)
		r.Get("/api/admin/analytics", analyticsHandler.GetAnalytics)
	})
}
