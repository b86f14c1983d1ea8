package controllers

import (
	"net/http"

	"github.com/storerate/storerate-backend/api/responses"
	"github.com/storerate/storerate-backend/api/validators"
	"github.com/storerate/storerate-backend/internal/stores"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/pagination"
)

// AdminStoreCreate registers a store under an existing store owner.
func AdminStoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var body stores.CreateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminStoreList serves the admin store listing without per-user scores.
func AdminStoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		sortBy, desc, err := validators.ParseQuerySort(r, "sort", storeSortColumns)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, next, err := svc.List(r.Context(), stores.ListQuery{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 400),
			SortBy: sortBy,
			Desc:   desc,
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storeListResponse{Stores: rows, NextCursor: next})
	}
}

// AdminStoreDetail returns one store by id.
func AdminStoreDetail(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return StoreDetail(svc, logg)
}

// AdminStoreDelete removes a store and, through the schema cascade, its ratings.
func AdminStoreDelete(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		id, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
