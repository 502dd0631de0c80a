package tracer

import (
	"context"
	"testing"

	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	shutdown := InitTracer(context.Background(), config.TelemetryConfig{Enabled: false}, logger.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_Enabled(t *testing.T) {
	cfg := config.TelemetryConfig{Enabled: true, OTLPEndpoint: "localhost:4318", ServiceName: "test"}
	shutdown := InitTracer(context.Background(), cfg, logger.NewNopLogger())
	assert.NotNil(t, shutdown)
}
