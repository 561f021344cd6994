package config_test

import (
	"testing"

	"github.com/lendcore/veriflow/internal/config"
)

func TestServerFinalizeDefaults(t *testing.T) {
	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"host", cfg.Host, "0.0.0.0"},
		{"port", cfg.Port, 8080},
		{"read_timeout", cfg.ReadTimeout, "1m"},
		{"write_timeout", cfg.WriteTimeout, "1m"},
		{"shutdown_timeout", cfg.ShutdownTimeout, "30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestServerFinalizeEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerHost, "127.0.0.1")
	t.Setenv(config.EnvServerPort, "9090")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "127.0.0.1" || cfg.Port != 9090 {
		t.Errorf("got %s:%d, want 127.0.0.1:9090", cfg.Host, cfg.Port)
	}
}

func TestServerValidateRejectsBadPort(t *testing.T) {
	cfg := config.ServerConfig{Port: 70000}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestAuthValidation(t *testing.T) {
	disabled := config.AuthConfig{}
	if err := disabled.Finalize(); err != nil {
		t.Errorf("disabled auth should not require issuer: %v", err)
	}
	if disabled.DevSubject != "dev-user" || disabled.DevRole != "admin" {
		t.Errorf("unexpected dev defaults: %+v", disabled)
	}

	enabled := config.AuthConfig{Enabled: true}
	if err := enabled.Finalize(); err == nil {
		t.Error("enabled auth without issuer should fail validation")
	}

	complete := config.AuthConfig{
		Enabled:  true,
		Issuer:   "https://idp.example.com",
		ClientID: "veriflow",
	}
	if err := complete.Finalize(); err != nil {
		t.Errorf("complete auth config should validate: %v", err)
	}
}

func TestTimelineFinalizeDefaults(t *testing.T) {
	var cfg config.TimelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BufferSize != 256 {
		t.Errorf("got buffer_size %d, want 256", cfg.BufferSize)
	}
	if cfg.DrainTimeout != "10s" {
		t.Errorf("got drain_timeout %q, want 10s", cfg.DrainTimeout)
	}
}
