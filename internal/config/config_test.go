package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_CONCURRENT_ANALYSES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReportPort != "8081" {
		t.Errorf("report port = %q, want 8081", cfg.Server.ReportPort)
	}
	if cfg.Database.Schema != "public" {
		t.Errorf("schema = %q, want public", cfg.Database.Schema)
	}
	if cfg.Engine.MaxConcurrentAnalyses != 4 {
		t.Errorf("max concurrent = %d, want 4", cfg.Engine.MaxConcurrentAnalyses)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_CONCURRENT_ANALYSES", "8")
	t.Setenv("DB_SCHEMA", "analytics")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Engine.MaxConcurrentAnalyses != 8 {
		t.Errorf("max concurrent = %d, want 8", cfg.Engine.MaxConcurrentAnalyses)
	}
	if cfg.Database.Schema != "analytics" {
		t.Errorf("schema = %q, want analytics", cfg.Database.Schema)
	}
}

func TestLoadRejectsBadConcurrency(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_ANALYSES", "-2")
	if _, err := Load(); err == nil {
		t.Error("expected validation error for negative concurrency")
	}
}
