package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamtube/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		TokenSecret:     "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		StagingDir:      t.TempDir(),
		MaxUploadBytes:  64 << 20,
		AuthRate:        config.RateLimitConfig{Requests: 10, Window: time.Minute, Burst: 5, TTL: 10 * time.Minute},
		ObjectStore:     config.ObjectStoreConfig{Bucket: "test-bucket", Endpoint: "http://localhost:9000", Region: "us-east-1"},
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	deps, err := buildDependencies(context.Background(), fakePool{}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Users == nil {
		t.Fatal("expected user repository to be configured")
	}
	if deps.Sessions == nil {
		t.Fatal("expected session manager to be configured")
	}
	if deps.Ingestor == nil {
		t.Fatal("expected media ingestor to be configured")
	}
	if deps.Videos == nil {
		t.Fatal("expected video repository to be configured")
	}
	if deps.Likes == nil {
		t.Fatal("expected like repository to be configured")
	}
	if deps.Authenticate == nil {
		t.Fatal("expected authentication middleware to be configured")
	}
	if deps.AuthLimiter == nil {
		t.Fatal("expected auth rate limiter to be configured")
	}
	if deps.MaxUploadBytes != cfg.MaxUploadBytes {
		t.Fatalf("expected upload limit %d, got %d", cfg.MaxUploadBytes, deps.MaxUploadBytes)
	}
}

func TestBuildDependenciesRequiresTokenSecret(t *testing.T) {
	cfg := config.Config{
		TokenSecret: "   ",
		StagingDir:  t.TempDir(),
		ObjectStore: config.ObjectStoreConfig{Bucket: "test-bucket"},
	}

	if _, err := buildDependencies(context.Background(), fakePool{}, cfg); err == nil {
		t.Fatal("expected error when token secret is unset")
	}
}
