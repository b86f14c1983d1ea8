package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/storerate/storerate-backend/api/middleware"
	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/internal/users"
)

type stubUsersService struct {
	details *users.OwnerDetailsDTO
	created *users.UserDTO
	list    []users.UserDTO
	next    string
	err     error

	lastQuery users.ListQuery
	deletedID uuid.UUID
}

func (s *stubUsersService) Create(ctx context.Context, req users.CreateUserRequest) (*users.UserDTO, error) {
	return s.created, s.err
}

func (s *stubUsersService) Get(ctx context.Context, id uuid.UUID) (*users.OwnerDetailsDTO, error) {
	return s.details, s.err
}

func (s *stubUsersService) List(ctx context.Context, q users.ListQuery) ([]users.UserDTO, string, error) {
	s.lastQuery = q
	return s.list, s.next, s.err
}

func (s *stubUsersService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

type stubRatingsService struct {
	result *ratings.UpsertResultDTO
	rows   []ratings.RatingDTO
	err    error

	lastStoreID uuid.UUID
	lastUserID  uuid.UUID
	lastScore   int
}

func (s *stubRatingsService) Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*ratings.UpsertResultDTO, error) {
	s.lastStoreID = storeID
	s.lastUserID = userID
	s.lastScore = score
	return s.result, s.err
}

func (s *stubRatingsService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ratings.RatingDTO, error) {
	return s.rows, s.err
}

func (s *stubRatingsService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ratings.RatingDTO, error) {
	s.lastUserID = userID
	return s.rows, s.err
}

func authedRequest(method, target string, body []byte, userID uuid.UUID, accessID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithAccessID(ctx, accessID)
	return req.WithContext(ctx)
}

func TestMeProfileReturnsOwnRecord(t *testing.T) {
	userID := uuid.New()
	avg := 4.5
	svc := &stubUsersService{details: &users.OwnerDetailsDTO{
		UserDTO:       users.UserDTO{ID: userID, Email: "jane@example.com"},
		AverageRating: &avg,
	}}

	handler := MeProfile(svc, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/me", nil, userID, "sess"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data users.OwnerDetailsDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AverageRating == nil || *envelope.Data.AverageRating != 4.5 {
		t.Fatalf("expected owner average in payload, got %+v", envelope.Data.AverageRating)
	}
}

func TestMeProfileRequiresAuthContext(t *testing.T) {
	handler := MeProfile(&stubUsersService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMeUpdatePasswordForwardsSession(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{}
	handler := MeUpdatePassword(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/v1/me/password", []byte(`{"password":"NewSecret1!"}`), userID, "sess-42"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.passwordUserID != userID {
		t.Fatalf("expected user %s, got %s", userID, svc.passwordUserID)
	}
	if svc.passwordAccessID != "sess-42" {
		t.Fatalf("expected sess-42, got %q", svc.passwordAccessID)
	}
	if svc.newPassword != "NewSecret1!" {
		t.Fatalf("unexpected password %q", svc.newPassword)
	}
}

func TestMeRatingsListsOwnSubmissions(t *testing.T) {
	userID := uuid.New()
	svc := &stubRatingsService{rows: []ratings.RatingDTO{{ID: uuid.New(), Score: 5}}}
	handler := MeRatings(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/me/ratings", nil, userID, "sess"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastUserID != userID {
		t.Fatalf("expected lookup for %s, got %s", userID, svc.lastUserID)
	}
}
