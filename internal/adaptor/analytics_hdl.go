package adaptor

import (
	"net/http"

	"paramount-autos/internal/usecase"
	"paramount-autos/pkg/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service usecase.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service usecase.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log.With(zap.String("handler", "analytics")),
	}
}

// GetDashboard handles GET /api/admin/dashboard (admin only)
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboard(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetAnalytics handles GET /api/admin/analytics (admin only)
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetAnalytics(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get analytics")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
