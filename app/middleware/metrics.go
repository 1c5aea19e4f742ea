package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "bloghouse/http"

// Metrics records a request counter and a duration histogram per route.
// Instruments come from the global meter provider, which is a no-op
// unless the host installs an SDK.
func Metrics() (func(http.Handler) http.Handler, error) {
	meter := otel.Meter(meterName)

	completed, err := meter.Int64Counter(
		"http.server.completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("Request duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", routeTemplate(r)),
				attribute.String("status", strconv.Itoa(rec.status)),
			)
			completed.Add(r.Context(), 1, attrs)
			duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
		})
	}, nil
}

// routeTemplate keeps path ids out of metric attributes.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
