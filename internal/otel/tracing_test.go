package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/logx"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	s := SettingsFromEnv()
	assert.Equal(t, "parkgate", s.ServiceName)
	assert.Equal(t, "grpc", s.Protocol)
	assert.Equal(t, "collector:4317", s.Endpoint)
	assert.Equal(t, "parentbased_traceidratio", s.Sampler)
}

func TestSampler(t *testing.T) {
	cases := map[string]string{
		"always_on":                "AlwaysOnSampler",
		"always_off":               "AlwaysOffSampler",
		"traceidratio":             "TraceIDRatioBased",
		"parentbased_always_off":   "ParentBased",
		"parentbased_traceidratio": "ParentBased",
		"bogus":                    "ParentBased",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(Sampler(name, "0.5").Description(), want))
		})
	}
}

func TestInitDisabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitWith(context.Background(), Settings{Disabled: true}, logx.New(&buf, time.UTC))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tracing_configured", entry["msg"])
	assert.Equal(t, false, entry["tracing_enabled"])
	assert.Equal(t, "tracing", entry["component"])
}

func TestInitUnsupportedProtocolDegrades(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitWith(context.Background(), Settings{ServiceName: "parkgate", Protocol: "carrier-pigeon"}, logx.New(&buf, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Contains(t, buf.String(), "tracing_init_failed")
	assert.Contains(t, buf.String(), "unsupported OTLP protocol")
}
