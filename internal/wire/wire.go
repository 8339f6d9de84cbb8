// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"paramount-autos/internal/adaptor"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/usecase"
	"paramount-autos/pkg/middleware"
	"paramount-autos/pkg/notify"
	"paramount-autos/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the infrastructure pieces built in main.
type Deps struct {
	Repo     *repository.Repository
	DB       Pinger
	Notifier notify.Notifier
	Limiter  middleware.RateLimiter // nil disables tracking throttling
}

// App holds the router and the services main needs for start-up tasks.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, deps.Repo, logger)
	wireVehicle(r, handler.Vehicle, deps.Repo, logger)
	wireBooking(r, handler.Booking, deps, logger)
	wireAnalytics(r, handler.Analytics, deps.Repo, logger)

	r.Get("/health", healthHandler(deps.DB))

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				utils.ResponseUnavailable(w, "database unreachable")
				return
			}
		}
		utils.ResponseSuccess(w, "OK", map[string]string{"status": "ok"})
	}
}
