package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledgerd.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCAddress != ":5005" || cfg.StorageBackend != "leveldb" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not persisted: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.GRPCAddress != cfg.GRPCAddress || again.RateLimit != cfg.RateLimit {
		t.Fatalf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerd.toml")
	contents := `RPCAddress = "127.0.0.1:6005"
GRPCAddress = "127.0.0.1:6051"
DataDir = "/var/lib/ledgerd"
StorageBackend = " Bolt "
LogFile = "/var/log/ledgerd.log"

[RateLimit]
RequestsPerMinute = 120.5
Burst = 10

[Telemetry]
Endpoint = "collector:4318"
Insecure = true
Traces = true
Headers = { "x-tenant" = "ops" }
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageBackend != "bolt" {
		t.Fatalf("expected normalised backend, got %q", cfg.StorageBackend)
	}
	if cfg.Environment != "dev" {
		t.Fatalf("expected default environment, got %q", cfg.Environment)
	}
	if cfg.RateLimit.RequestsPerMinute != 120.5 || cfg.RateLimit.Burst != 10 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if !cfg.Telemetry.Traces || cfg.Telemetry.Metrics || cfg.Telemetry.Headers["x-tenant"] != "ops" {
		t.Fatalf("unexpected telemetry: %+v", cfg.Telemetry)
	}
	if cfg.LogFile != "/var/log/ledgerd.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerd.toml")
	if err := os.WriteFile(path, []byte(`StorageBackend = "rocksdb"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "StorageBackend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty rpc", func(c *Config) { c.RPCAddress = " " }, "RPCAddress"},
		{"empty grpc", func(c *Config) { c.GRPCAddress = "" }, "GRPCAddress"},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "DataDir"},
		{"memory without data dir", func(c *Config) { c.StorageBackend = "memory"; c.DataDir = "" }, ""},
		{"negative rate", func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }, "RequestsPerMinute"},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }, "Burst"},
		{"exporter without endpoint", func(c *Config) { c.Telemetry.Metrics = true }, "Endpoint"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
