package controllers

import (
	"net/http"

	"github.com/storerate/storerate-backend/api/responses"
	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/db"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StoreRate-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady confirms the dependencies behind the API answer before traffic
// is admitted.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StoreRate-Env", cfg.App.Env)

		checks := map[string]string{}

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable").
					WithDetails(map[string]string{"dependency": "database"}))
				return
			}
			checks["database"] = "ok"
		}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable").
					WithDetails(map[string]string{"dependency": "redis"}))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
