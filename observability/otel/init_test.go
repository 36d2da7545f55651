package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgerd/config"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = secret ,broken, =nokey,x-tenant=ops,")
	require.Equal(t, map[string]string{"api-key": "secret", "x-tenant": "ops"}, got)
	require.Empty(t, ParseHeaders(""))
}

func TestFromTelemetryMergesEnvironmentHeaders(t *testing.T) {
	t.Setenv(headersEnv, "authorization=Bearer abc,x-tenant=env")
	cfg := FromTelemetry("ledgerd", "prod", config.Telemetry{
		Endpoint: " collector:4318 ",
		Traces:   true,
		Headers:  map[string]string{"x-tenant": "file", "x-region": "eu"},
	})
	require.Equal(t, "ledgerd", cfg.ServiceName)
	require.Equal(t, "collector:4318", cfg.Endpoint)
	require.True(t, cfg.Traces)
	require.False(t, cfg.Metrics)
	require.Equal(t, map[string]string{
		"authorization": "Bearer abc",
		"x-tenant":      "env",
		"x-region":      "eu",
	}, cfg.Headers)
}

func TestInitWithoutExporters(t *testing.T) {
	_, err := Init(context.Background(), Config{})
	require.Error(t, err)

	shutdown, err := Init(context.Background(), Config{ServiceName: "ledgerd"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
