package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_ExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Init("claimcheck-test", "test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("claimcheck.test").Start(context.Background(), "test.Span")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "test.Span")
	assert.Contains(t, buf.String(), "claimcheck-test")
}
