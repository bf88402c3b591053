package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/riskibarqy/nfl-projections/internal/usecase"

const (
	attrSeasons  = attribute.Key("nfl.seasons")
	attrWindow   = attribute.Key("nfl.rolling_window")
	attrPosition = attribute.Key("nfl.position")
	attrRunID    = attribute.Key("nfl.run_id")
	attrRows     = attribute.Key("nfl.rows")
	attrDataset  = attribute.Key("nfl.dataset")
)

// startUsecaseSpan starts a span from the global provider, which is a no-op
// until tracing is initialised.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// endUsecaseSpan records *err on span, if set, and ends it.
func endUsecaseSpan(span trace.Span, err *error) {
	if err != nil && *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
