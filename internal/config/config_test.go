package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DATABASE_URL", "DATABASE_URL_POOLED", "DATABASE_URL_DIRECT", "AUTH_MODE", "AUTH_REQUIRED", "BLOB_MODE", "PLAN_DAYS", "CORS_ALLOWED_ORIGINS", "JWT_ISSUER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Env != "local" || cfg.Port != 8080 {
		t.Errorf("unexpected env/port: %s %d", cfg.Env, cfg.Port)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected no database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.AuthMode != AuthModeNone || cfg.AuthRequired {
		t.Errorf("expected auth disabled, got mode=%s required=%t", cfg.AuthMode, cfg.AuthRequired)
	}
	if cfg.Blob.Mode != BlobModeLocal {
		t.Errorf("expected local blob mode, got %s", cfg.Blob.Mode)
	}
	if cfg.PlanDays != nil {
		t.Errorf("expected no plan days, got %v", cfg.PlanDays)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		t.Error("expected localhost CORS origins in local env")
	}
	if cfg.JWTIssuer != "menu-board" {
		t.Errorf("unexpected issuer %q", cfg.JWTIssuer)
	}
}

func TestLoad_DatabasePriority(t *testing.T) {
	t.Setenv("DATABASE_URL_POOLED", "")
	t.Setenv("DATABASE_URL", "postgres://url")
	t.Setenv("DATABASE_URL_DIRECT", "postgres://direct")

	if got := Load().DatabaseURL; got != "postgres://url" {
		t.Errorf("expected DATABASE_URL before DIRECT, got %q", got)
	}

	t.Setenv("DATABASE_URL_POOLED", "postgres://pooled")
	if got := Load().DatabaseURL; got != "postgres://pooled" {
		t.Errorf("expected pooled URL first, got %q", got)
	}
}

func TestLoad_AuthRequiresMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "")
	t.Setenv("AUTH_REQUIRED", "1")
	if Load().AuthRequired {
		t.Error("expected AUTH_REQUIRED to be ignored without AUTH_MODE")
	}

	t.Setenv("AUTH_MODE", "dev")
	if !Load().AuthRequired {
		t.Error("expected auth required in dev mode")
	}

	t.Setenv("AUTH_MODE", "siwa")
	if Load().AuthMode != AuthModeNone {
		t.Error("expected unknown auth mode to fall back to none")
	}
}

func TestLoad_PlanDays(t *testing.T) {
	t.Setenv("PLAN_DAYS", " Monday, tuesday,,TUESDAY, friday ")

	want := []string{"monday", "tuesday", "friday"}
	if got := Load().PlanDays; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseBlobMode(t *testing.T) {
	tests := map[string]string{
		"":      BlobModeLocal,
		"S3":    BlobModeS3,
		" auto": BlobModeAuto,
		"ftp":   BlobModeLocal,
	}
	for in, want := range tests {
		if got := parseBlobMode(in); got != want {
			t.Errorf("parseBlobMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestS3Config(t *testing.T) {
	cfg := S3Config{Bucket: "exports"}
	want := []string{"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY"}
	if got := cfg.MissingRequired(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if cfg.IsConfigured() {
		t.Error("expected partial config not to be configured")
	}

	cfg.AccessKeyID = "key"
	cfg.SecretAccessKey = "secret"
	if !cfg.IsConfigured() {
		t.Error("expected config to be ready")
	}
	summary := cfg.Summary()
	if strings.Contains(summary, "=secret") || !strings.Contains(summary, "secret_access_key=set") {
		t.Errorf("unexpected summary: %s", summary)
	}
}
