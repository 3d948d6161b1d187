package tracing_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"taskapp/pkg/tracing"
)

func TestGetTraceID(t *testing.T) {
	RegisterTestingT(t)

	Expect(tracing.GetTraceID(context.Background())).To(BeEmpty())

	provider := sdktrace.NewTracerProvider()
	defer provider.Shutdown(context.Background())

	ctx, span := provider.Tracer("test").Start(context.Background(), "operation")
	defer span.End()

	Expect(tracing.GetTraceID(ctx)).To(HaveLen(32))
}
