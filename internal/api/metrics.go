package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"portal/pkg/metrics"
)

// withRequestMetrics records a counter and a latency histogram per route and
// status code on the given meter provider.
func withRequestMetrics(mp *sdkmetric.MeterProvider) echo.MiddlewareFunc {
	meter := mp.Meter("portal/api")

	requests, _ := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total handled HTTP requests"))
	latency, _ := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := metric.WithAttributes(
				attribute.String("method", c.Request().Method),
				attribute.String("route", c.Path()),
				attribute.String("status", strconv.Itoa(c.Response().Status)),
			)
			requests.Add(c.Request().Context(), 1, attrs)
			latency.Record(c.Request().Context(), time.Since(start).Seconds(), attrs)

			return nil
		}
	}
}
