package config

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/kzmaps/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GlobalAPIURL != "https://kztimerglobal.com/api/v2.0/" {
		t.Errorf("GlobalAPIURL = %q", cfg.GlobalAPIURL)
	}
	if cfg.SchnoseAPIURL != "https://schnose.xyz/api/" {
		t.Errorf("SchnoseAPIURL = %q", cfg.SchnoseAPIURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %s, want 30s", cfg.HTTPTimeout)
	}
	if cfg.Level() != logger.LevelInfo {
		t.Errorf("Level() = %s, want INFO", cfg.Level())
	}
	if cfg.HTTPClient().Timeout != 30*time.Second {
		t.Errorf("HTTPClient().Timeout = %s", cfg.HTTPClient().Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KZMAPS_GLOBAL_API_URL", "http://localhost:8080/")
	t.Setenv("KZMAPS_HTTP_TIMEOUT", "5s")
	t.Setenv("KZMAPS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GlobalAPIURL != "http://localhost:8080/" {
		t.Errorf("GlobalAPIURL = %q", cfg.GlobalAPIURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %s, want 5s", cfg.HTTPTimeout)
	}
	if cfg.Level() != logger.LevelDebug {
		t.Errorf("Level() = %s, want DEBUG", cfg.Level())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unparseable timeout", "KZMAPS_HTTP_TIMEOUT", "soon", "parse env:"},
		{"negative timeout", "KZMAPS_HTTP_TIMEOUT", "-1s", "must be positive"},
		{"unknown log level", "KZMAPS_LOG_LEVEL", "verbose", "KZMAPS_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
