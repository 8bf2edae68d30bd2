package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Mode != "production" {
		t.Fatalf("expected production mode by default, got %q", cfg.Mode)
	}
	if cfg.RedisAddress != "localhost:6379" {
		t.Fatalf("unexpected redis address: %q", cfg.RedisAddress)
	}
	if cfg.WatchdogPeriod != time.Second || cfg.StandbyDelay != 3*time.Second {
		t.Fatalf("unexpected timing defaults: %+v", cfg)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("KIOSK_MODE", "test")
	t.Setenv("KIOSK_REDIS_ADDRESS", "redis:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Mode != "test" {
		t.Fatalf("expected env mode, got %q", cfg.Mode)
	}
	if cfg.RedisAddress != "redis:6379" {
		t.Fatalf("expected env redis address, got %q", cfg.RedisAddress)
	}
}

func TestFetchMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"mode":"test"}`))
	}))
	defer server.Close()

	mode, err := FetchMode(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected mode fetch to succeed, got %v", err)
	}
	if mode != "test" {
		t.Fatalf("expected test mode, got %q", mode)
	}
}

func TestFetchModeReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := FetchMode(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error from an unavailable backend")
	}
}
