package maze

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("maze.search")
	meter  = otel.Meter("maze.search")
)

var (
	searchTotal    metric.Int64Counter
	searchLatency  metric.Float64Histogram
	expandedCells  metric.Int64Histogram
	metricsOnce    sync.Once
	metricsInitErr error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchTotal, err = meter.Int64Counter(
			"maze_search_total",
			metric.WithDescription("Total number of completed searches"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		searchLatency, err = meter.Float64Histogram(
			"maze_search_duration_seconds",
			metric.WithDescription("Duration of completed searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		expandedCells, err = meter.Int64Histogram(
			"maze_search_expanded_cells",
			metric.WithDescription("Number of cells moved to the visited set per search"),
		)
		if err != nil {
			metricsInitErr = err
		}
	})
	return metricsInitErr
}

func recordSearchMetrics(ctx context.Context, duration time.Duration, result Result) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("found", result.Found))
	searchTotal.Add(ctx, 1, attrs)
	searchLatency.Record(ctx, duration.Seconds(), attrs)
	expandedCells.Record(ctx, int64(result.Expanded), attrs)
}

func startSearchSpan(ctx context.Context, size int, start, goal Cell) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pathfinder.FindPath",
		trace.WithAttributes(
			attribute.Int("maze.size", size),
			attribute.String("maze.start", start.String()),
			attribute.String("maze.goal", goal.String()),
		),
	)
}

func setSearchSpanResult(span trace.Span, result Result) {
	span.SetAttributes(
		attribute.Bool("maze.found", result.Found),
		attribute.Int("maze.cost", result.Cost),
		attribute.Int("maze.expanded", result.Expanded),
	)
}

func setSearchSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
