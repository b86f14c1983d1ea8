package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/api/responses"
	"github.com/storerate/storerate-backend/api/validators"
	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/internal/stores"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/pagination"

	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
)

var storeSortColumns = map[string]bool{
	"name":           true,
	"email":          true,
	"address":        true,
	"average_rating": true,
	"created_at":     true,
}

type storeListResponse struct {
	Stores     []stores.StoreForUserDTO `json:"stores"`
	NextCursor string                   `json:"next_cursor,omitempty"`
}

type rateStoreRequest struct {
	Score int `json:"score" validate:"required"`
}

func storeIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "storeID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id").
			WithDetails(map[string]string{"store_id": "must be a valid id"})
	}
	return id, nil
}

// StoreList serves the browsing surface: search, sort, and each store carries
// the caller's own score when present.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
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
			Search:  validators.SanitizeString(r.URL.Query().Get("search"), 400),
			SortBy:  sortBy,
			Desc:    desc,
			Limit:   limit,
			Cursor:  r.URL.Query().Get("cursor"),
			ForUser: userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storeListResponse{Stores: rows, NextCursor: next})
	}
}

// StoreDetail returns a single store with its live aggregates.
func StoreDetail(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
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

		store, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreRate submits or overwrites the caller's rating for a store and returns
// the refreshed aggregates.
func StoreRate(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rating service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := storeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Upsert(r.Context(), storeID, userID, body.Score)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
