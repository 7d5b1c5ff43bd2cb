package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %q", cfg.LogLevel)
	}
	if cfg.Port != 8053 {
		t.Errorf("expected Port=8053, got %d", cfg.Port)
	}
	if cfg.CacheSize != 1000 {
		t.Errorf("expected CacheSize=1000, got %d", cfg.CacheSize)
	}
	if cfg.DisableCache {
		t.Errorf("expected DisableCache=false by default")
	}
	if cfg.ListPath != "" {
		t.Errorf("expected empty ListPath (bundled list), got %q", cfg.ListPath)
	}
	if !cfg.IncludePrivate {
		t.Errorf("expected IncludePrivate=true by default")
	}
	if cfg.SnapshotPath != "" {
		t.Errorf("expected empty SnapshotPath by default, got %q", cfg.SnapshotPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOSTPARTS_ENV", "dev")
	t.Setenv("HOSTPARTS_LOG_LEVEL", "debug")
	t.Setenv("HOSTPARTS_PORT", "9000")
	t.Setenv("HOSTPARTS_LIST_PATH", "/etc/hostparts/list.dat")
	t.Setenv("HOSTPARTS_INCLUDE_PRIVATE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %q", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %q", cfg.LogLevel)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.Port)
	}
	if cfg.ListPath != "/etc/hostparts/list.dat" {
		t.Errorf("expected ListPath override, got %q", cfg.ListPath)
	}
	if cfg.IncludePrivate {
		t.Errorf("expected IncludePrivate=false")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "HOSTPARTS_ENV", "staging"},
		{"bad log level", "HOSTPARTS_LOG_LEVEL", "verbose"},
		{"bad port", "HOSTPARTS_PORT", "99999"},
		{"negative cache", "HOSTPARTS_CACHE_SIZE", "-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
