package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("WEB420_PRIMARY__ENV", "test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("driver = %q, want %q", cfg.Store.Driver, StoreDriverMemory)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("bcrypt cost = %d, want 10", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.RateLimitWindow != time.Minute {
		t.Errorf("rate limit window = %s, want 1m", cfg.Auth.RateLimitWindow)
	}
	if cfg.Observability == nil || cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("observability defaults not applied: %+v", cfg.Observability)
	}
	if cfg.Observability.Environment != "test" {
		t.Errorf("observability env = %q, want test", cfg.Observability.Environment)
	}
	if cfg.JobsEnabled() {
		t.Error("jobs should be disabled without redis and resend settings")
	}
}

func TestLoadConfigNestedKeys(t *testing.T) {
	t.Setenv("WEB420_PRIMARY__ENV", "local")
	t.Setenv("WEB420_SERVER__PORT", "9090")
	t.Setenv("WEB420_STORE__DRIVER", "mongo")
	t.Setenv("WEB420_MONGO__URI", "mongodb://localhost:27017")
	t.Setenv("WEB420_MONGO__DATABASE", "web420")
	t.Setenv("WEB420_MONGO__CONNECT_TIMEOUT", "3s")
	t.Setenv("WEB420_AUTH__BCRYPT_COST", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Mongo.ConnectTimeout != 3*time.Second {
		t.Errorf("connect timeout = %s, want 3s", cfg.Mongo.ConnectTimeout)
	}
	if cfg.Auth.BcryptCost != 4 {
		t.Errorf("bcrypt cost = %d, want 4", cfg.Auth.BcryptCost)
	}
	if !cfg.IsLocal() {
		t.Error("expected local environment")
	}
}

func TestLoadConfigRejectsIncompleteDriverSettings(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		wantIn string
	}{
		{
			name:   "missing env",
			env:    map[string]string{},
			wantIn: "Env",
		},
		{
			name: "unknown driver",
			env: map[string]string{
				"WEB420_PRIMARY__ENV":  "test",
				"WEB420_STORE__DRIVER": "sqlite",
			},
			wantIn: "Driver",
		},
		{
			name: "postgres without host",
			env: map[string]string{
				"WEB420_PRIMARY__ENV":  "test",
				"WEB420_STORE__DRIVER": "postgres",
			},
			wantIn: "database host",
		},
		{
			name: "mongo without uri",
			env: map[string]string{
				"WEB420_PRIMARY__ENV":  "test",
				"WEB420_STORE__DRIVER": "mongo",
			},
			wantIn: "mongo uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Fatalf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid level error")
	}

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid format error")
	}

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Level = ""
	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Fatalf("GetLogLevel = %q, want info", got)
	}
}
