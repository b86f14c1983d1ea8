package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/internal/stats"
	"github.com/storerate/storerate-backend/internal/users"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
)

type statsServiceStub struct {
	totals *stats.TotalsDTO
	err    error
}

func (s statsServiceStub) Totals(ctx context.Context) (*stats.TotalsDTO, error) {
	return s.totals, s.err
}

func TestAdminUserCreateReturnsCreated(t *testing.T) {
	svc := &stubUsersService{created: &users.UserDTO{
		ID:    uuid.New(),
		Email: "owner@example.com",
		Role:  enums.RoleStoreOwner,
	}}

	handler := AdminUserCreate(svc, nil)
	body := `{"name":"A Perfectly Valid Name","email":"owner@example.com","address":"789 Store Boulevard, Store City","password":"Store123!","role":"store_owner"}`
	req := authedRequest(http.MethodPost, "/api/v1/admin/users", []byte(body), uuid.New(), "sess")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAdminUserListParsesFilters(t *testing.T) {
	svc := &stubUsersService{list: []users.UserDTO{{ID: uuid.New(), Role: enums.RoleUser}}, next: "cursor-2"}

	handler := AdminUserList(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?search=john&role=user&sort=email&limit=50&cursor=cursor-1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Search != "john" || svc.lastQuery.Role != enums.RoleUser {
		t.Fatalf("unexpected filters %+v", svc.lastQuery)
	}
	if svc.lastQuery.SortBy != "email" || svc.lastQuery.Desc {
		t.Fatalf("unexpected sort %+v", svc.lastQuery)
	}
	if svc.lastQuery.Limit != 50 || svc.lastQuery.Cursor != "cursor-1" {
		t.Fatalf("unexpected paging %+v", svc.lastQuery)
	}

	var envelope struct {
		Data userListResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NextCursor != "cursor-2" {
		t.Fatalf("expected next cursor, got %q", envelope.Data.NextCursor)
	}
}

func TestAdminUserListRejectsUnknownRole(t *testing.T) {
	handler := AdminUserList(&stubUsersService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?role=superuser", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUserDetailNotFound(t *testing.T) {
	svc := &stubUsersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	router := chi.NewRouter()
	router.Get("/api/v1/admin/users/{userID}", AdminUserDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminUserDeleteParsesPathID(t *testing.T) {
	svc := &stubUsersService{}
	router := chi.NewRouter()
	router.Delete("/api/v1/admin/users/{userID}", AdminUserDelete(svc, nil))

	target := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/"+target.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.deletedID != target {
		t.Fatalf("expected delete of %s got %s", target, svc.deletedID)
	}
}

func TestAdminStoreCreateMapsValidationDetails(t *testing.T) {
	svc := &storesServiceStub{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid store payload").
		WithDetails(map[string]string{"owner_id": "owner must hold the store_owner role"})}

	handler := AdminStoreCreate(svc, nil)
	body := `{"name":"A Perfectly Valid Store Name","email":"store@example.com","address":"100 Tech Park, Downtown, DT 22222","owner_id":"` + uuid.NewString() + `"}`
	req := authedRequest(http.MethodPost, "/api/v1/admin/stores", []byte(body), uuid.New(), "sess")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["owner_id"] == "" {
		t.Fatalf("expected owner_id detail, got %+v", envelope.Error.Details)
	}
}

func TestAdminStoreDeleteParsesPathID(t *testing.T) {
	svc := &storesServiceStub{}
	router := chi.NewRouter()
	router.Delete("/api/v1/admin/stores/{storeID}", AdminStoreDelete(svc, nil))

	target := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/stores/"+target.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.deletedID != target {
		t.Fatalf("expected delete of %s got %s", target, svc.deletedID)
	}
}

func TestAdminStatsReturnsTotals(t *testing.T) {
	handler := AdminStats(statsServiceStub{totals: &stats.TotalsDTO{Users: 3, Stores: 3, Ratings: 2}}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data stats.TotalsDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Users != 3 || envelope.Data.Ratings != 2 {
		t.Fatalf("unexpected totals %+v", envelope.Data)
	}
}
