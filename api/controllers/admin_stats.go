package controllers

import (
	"net/http"

	"github.com/storerate/storerate-backend/api/responses"
	"github.com/storerate/storerate-backend/internal/stats"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/logger"
)

// AdminStats returns the platform-wide totals for the admin dashboard.
func AdminStats(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		totals, err := svc.Totals(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totals)
	}
}
