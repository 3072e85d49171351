package tracing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/config"
)

func stubExporter(t *testing.T, exp sdktrace.SpanExporter, err error) {
	t.Helper()
	orig := newExporter
	newExporter = func(context.Context, string) (sdktrace.SpanExporter, error) { return exp, err }
	t.Cleanup(func() {
		newExporter = orig
		otel.SetTracerProvider(noop.NewTracerProvider())
	})
}

func TestInitWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "svc", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, otel.GetTextMapPropagator())
}

func TestInitExportsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	stubExporter(t, exp, nil)

	shutdown, err := Init(context.Background(), "svc", "collector:4317")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "op", spans[0].Name)
}

func TestInitExporterError(t *testing.T) {
	stubExporter(t, nil, errors.New("dial"))

	_, err := Init(context.Background(), "svc", "collector:4317")
	assert.Error(t, err)
}

func TestRegisterLifecycle(t *testing.T) {
	stubExporter(t, tracetest.NewInMemoryExporter(), nil)

	lc := fxtest.NewLifecycle(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registerLifecycle(lc, &config.Config{OTLPEndpoint: "collector:4317"}, logger)

	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))
}
