package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storerate/storerate-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	resp := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-StoreRate-Env"); got != "dev" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestHealthReadyChecksDependencies(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	resp := httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}, stubPinger{}).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReadyFailsWhenDatabaseDown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	resp := httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{err: errors.New("no route")}, stubPinger{}).
		ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
