package config

import (
	"errors"
	"fmt"
	"strings"
)

var backends = map[string]struct{}{
	"leveldb": {},
	"bolt":    {},
	"memory":  {},
}

// Validate reports the first configuration value the daemon cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil configuration")
	}
	if strings.TrimSpace(cfg.RPCAddress) == "" {
		return errors.New("config: RPCAddress must not be empty")
	}
	if strings.TrimSpace(cfg.GRPCAddress) == "" {
		return errors.New("config: GRPCAddress must not be empty")
	}
	if _, ok := backends[cfg.StorageBackend]; !ok {
		return fmt.Errorf("config: unknown StorageBackend %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend != "memory" && strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("config: DataDir must not be empty")
	}
	if cfg.RateLimit.RequestsPerMinute < 0 {
		return errors.New("config: RateLimit.RequestsPerMinute must not be negative")
	}
	if cfg.RateLimit.Burst < 0 {
		return errors.New("config: RateLimit.Burst must not be negative")
	}
	if (cfg.Telemetry.Traces || cfg.Telemetry.Metrics) && strings.TrimSpace(cfg.Telemetry.Endpoint) == "" {
		return errors.New("config: Telemetry.Endpoint required when exporters are enabled")
	}
	return nil
}
