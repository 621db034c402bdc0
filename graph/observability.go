package graph

import (
	"context"
	"time"

	"github.com/mailkit/mailkit/logger"
	"github.com/mailkit/mailkit/observability"
)

// WithTracing wraps a node function with OpenTelemetry span creation.
// Each execution creates a span named "graph.{name}".
func WithTracing[S, U any](name string, fn NodeFunc[S, U]) NodeFunc[S, U] {
	return func(ctx context.Context, state S) U {
		ctx, span := observability.StartSpan(ctx, "graph."+name)
		defer span.End()

		observability.SetSpanAttribute(ctx, "graph.node", name)
		return fn(ctx, state)
	}
}

// WithMetrics wraps a node function with metric recording of execution
// count and duration.
func WithMetrics[S, U any](name string, metrics *observability.Metrics, fn NodeFunc[S, U]) NodeFunc[S, U] {
	return func(ctx context.Context, state S) U {
		start := time.Now()
		u := fn(ctx, state)
		metrics.RecordNode(ctx, name, time.Since(start))
		return u
	}
}

// WithLogging wraps a node function with debug logging of each execution.
func WithLogging[S, U any](name string, log *logger.Logger, fn NodeFunc[S, U]) NodeFunc[S, U] {
	return func(ctx context.Context, state S) U {
		start := time.Now()
		u := fn(ctx, state)

		log.Debug("node completed", map[string]interface{}{
			"node":     name,
			"duration": time.Since(start).String(),
		})
		return u
	}
}
