package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// manualPrefix marks trace ids that were generated locally because no span was recording.
const manualPrefix = "man-"

// GetStartingTraceID returns the trace id of the span in ctx.
// When tracing is disabled it generates a uuid so logs can still be correlated.
func GetStartingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}
	return manualPrefix + uuid.NewString()
}
