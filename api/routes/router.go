package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storerate/storerate-backend/api/controllers"
	"github.com/storerate/storerate-backend/api/middleware"
	"github.com/storerate/storerate-backend/internal/auth"
	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/internal/stats"
	"github.com/storerate/storerate-backend/internal/stores"
	"github.com/storerate/storerate-backend/internal/users"
	"github.com/storerate/storerate-backend/pkg/auth/session"
	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/db"
	"github.com/storerate/storerate-backend/pkg/enums"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/metrics"
	"github.com/storerate/storerate-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface: health, metrics, auth, browsing,
// the owner dashboard, and the admin console.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	authService auth.Service,
	userService users.Service,
	storeService stores.Service,
	ratingService ratings.Service,
	statsService stats.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registerer(registry))

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	requireAuth := middleware.Auth(cfg.JWT, sessionChecker, logg)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.MeProfile(userService, logg))
			r.Put("/password", controllers.MeUpdatePassword(authService, logg))
			r.Get("/ratings", controllers.MeRatings(ratingService, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreList(storeService, logg))
			r.Get("/{storeID}", controllers.StoreDetail(storeService, logg))
			r.With(middleware.RequireRole(string(enums.RoleUser), logg)).
				Post("/{storeID}/ratings", controllers.StoreRate(ratingService, logg))
		})

		r.Route("/owner", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleStoreOwner), logg))
			r.Get("/dashboard", controllers.OwnerDashboard(storeService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

			r.Route("/users", func(r chi.Router) {
				r.Post("/", controllers.AdminUserCreate(userService, logg))
				r.Get("/", controllers.AdminUserList(userService, logg))
				r.Get("/{userID}", controllers.AdminUserDetail(userService, logg))
				r.Delete("/{userID}", controllers.AdminUserDelete(userService, logg))
			})

			r.Route("/stores", func(r chi.Router) {
				r.Post("/", controllers.AdminStoreCreate(storeService, logg))
				r.Get("/", controllers.AdminStoreList(storeService, logg))
				r.Get("/{storeID}", controllers.AdminStoreDetail(storeService, logg))
				r.Delete("/{storeID}", controllers.AdminStoreDelete(storeService, logg))
			})

			r.Get("/stats", controllers.AdminStats(statsService, logg))
		})
	})

	return r
}

func registerer(registry *prometheus.Registry) prometheus.Registerer {
	if registry == nil {
		return nil
	}
	return registry
}
