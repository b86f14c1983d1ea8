package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/api/responses"
	"github.com/storerate/storerate-backend/api/validators"
	"github.com/storerate/storerate-backend/internal/users"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/pagination"
)

var userSortColumns = map[string]bool{
	"name":       true,
	"email":      true,
	"address":    true,
	"role":       true,
	"created_at": true,
}

type userListResponse struct {
	Users      []users.UserDTO `json:"users"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "userID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id").
			WithDetails(map[string]string{"user_id": "must be a valid id"})
	}
	return id, nil
}

// AdminUserCreate provisions a user with any valid role.
func AdminUserCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var body users.CreateUserRequest
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

// AdminUserList serves the admin listing with search, role filter, and sorting.
func AdminUserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var role enums.Role
		if raw := r.URL.Query().Get("role"); raw != "" {
			parsed, err := enums.ParseRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid role filter").
					WithDetails(map[string]string{"role": "must be admin, user, or store_owner"}))
				return
			}
			role = parsed
		}

		sortBy, desc, err := validators.ParseQuerySort(r, "sort", userSortColumns)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, next, err := svc.List(r.Context(), users.ListQuery{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 400),
			Role:   role,
			SortBy: sortBy,
			Desc:   desc,
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, userListResponse{Users: rows, NextCursor: next})
	}
}

// AdminUserDetail returns one user; store owners include their rating average.
func AdminUserDetail(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}

// AdminUserDelete removes a user. Stores and ratings owned by the user go with
// it through the schema's cascades.
func AdminUserDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := userIDParam(r)
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
