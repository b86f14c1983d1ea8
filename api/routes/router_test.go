package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/storerate/storerate-backend/internal/auth"
	"github.com/storerate/storerate-backend/internal/ratings"
	"github.com/storerate/storerate-backend/internal/stats"
	"github.com/storerate/storerate-backend/internal/stores"
	"github.com/storerate/storerate-backend/internal/users"
	pkgAuth "github.com/storerate/storerate-backend/pkg/auth"
	"github.com/storerate/storerate-backend/pkg/auth/session"
	"github.com/storerate/storerate-backend/pkg/config"
	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
	"github.com/storerate/storerate-backend/pkg/logger"
	"github.com/storerate/storerate-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, accessID, newPassword string) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) Create(ctx context.Context, req users.CreateUserRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

func (stubUsersService) Get(ctx context.Context, id uuid.UUID) (*users.OwnerDetailsDTO, error) {
	return &users.OwnerDetailsDTO{UserDTO: users.UserDTO{ID: id}}, nil
}

func (stubUsersService) List(ctx context.Context, q users.ListQuery) ([]users.UserDTO, string, error) {
	return nil, "", nil
}

func (stubUsersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubStoresService struct{}

func (stubStoresService) Create(ctx context.Context, req stores.CreateStoreRequest) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: uuid.New()}, nil
}

func (stubStoresService) Get(ctx context.Context, id uuid.UUID) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: id}, nil
}

func (stubStoresService) List(ctx context.Context, q stores.ListQuery) ([]stores.StoreForUserDTO, string, error) {
	return nil, "", nil
}

func (stubStoresService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubStoresService) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*stores.OwnerDashboardDTO, error) {
	return &stores.OwnerDashboardDTO{}, nil
}

type stubRatingsService struct{}

func (stubRatingsService) Upsert(ctx context.Context, storeID, userID uuid.UUID, score int) (*ratings.UpsertResultDTO, error) {
	return &ratings.UpsertResultDTO{TotalRatings: 1, AverageRating: float64(score)}, nil
}

func (stubRatingsService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ratings.RatingDTO, error) {
	return nil, nil
}

func (stubRatingsService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ratings.RatingDTO, error) {
	return nil, nil
}

type stubStatsService struct{}

func (stubStatsService) Totals(ctx context.Context) (*stats.TotalsDTO, error) {
	return &stats.TotalsDTO{Users: 1}, nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionChecker{},
		stubAuthService{},
		stubUsersService{},
		stubStoresService{},
		stubRatingsService{},
		stubStatsService{},
		prometheus.NewRegistry(),
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "actor@example.com",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for own profile got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestOwnerDashboardRequiresOwnerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	user := httptest.NewRequest(http.MethodGet, "/api/v1/owner/dashboard", nil)
	user.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, user)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user got %d", resp.Code)
	}

	owner := httptest.NewRequest(http.MethodGet, "/api/v1/owner/dashboard", nil)
	owner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleStoreOwner))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner got %d", resp.Code)
	}
}

func TestRatingSubmissionRequiresUserRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/stores/" + uuid.NewString() + "/ratings"

	owner := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"score":5}`))
	owner.Header.Set("Content-Type", "application/json")
	owner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleStoreOwner))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, owner)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for store owner rating got %d", resp.Code)
	}

	user := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"score":5}`))
	user.Header.Set("Content-Type", "application/json")
	user.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for user rating got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected stubbed 401 got %d", resp.Code)
	}
}

func TestRegisterRouteReturnsCreated(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"name":"A Perfectly Valid Name","email":"a@b.com","address":"123 Long Enough Street","password":"Secret#1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}
