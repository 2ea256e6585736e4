// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the admission portal.
package api

import (
	"crypto/rsa"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"portal/internal/admission"
	"portal/internal/config"
	"portal/internal/dashboard"
	"portal/pkg/controller"
	"portal/pkg/domain"
	"portal/pkg/storage"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// JWTPublicKey is the PEM-encoded RSA public key bearer tokens are verified with.
	JWTPublicKey string

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		JWTPublicKey: cfg.JWT.PublicKey,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps are the collaborators the handlers delegate to.
type Deps struct {
	Admission admission.Service
	Dashboard *dashboard.Aggregator
	Storage   storage.Storage
}

// handler carries the wired dependencies into the route handlers.
type handler struct {
	admission admission.Service
	dashboard *dashboard.Aggregator
	storage   storage.Storage
}

// newRouter builds the echo router with all v1 routes and their role guards.
func newRouter(deps Deps, publicKey *rsa.PublicKey, mp *sdkmetric.MeterProvider) *echo.Echo {
	h := &handler{
		admission: deps.Admission,
		dashboard: deps.Dashboard,
		storage:   deps.Storage,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	v1 := e.Group("/v1", withAuth(publicKey), withRequestMetrics(mp))

	students := v1.Group("", requireRoles(domain.RoleStudent))
	students.POST("/applications", h.submitApplication)
	students.GET("/applications", h.listOwnApplications)
	students.DELETE("/applications/:id", h.withdrawApplication)
	students.GET("/courses/:id/qualification", h.courseQualification)

	reviewers := v1.Group("", requireRoles(domain.RoleInstitute, domain.RoleAdmin))
	reviewers.POST("/applications/:id/status", h.transitionApplication)
	reviewers.GET("/institutions/:id/applications", h.listInstitutionApplications)

	v1.GET("/dashboard", h.dashboardStats)

	return e
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry metrics exporter (Prometheus)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes with bearer auth and per-role guards
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	// v1 specs file
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("/v1/docs/", v5emb.New(
		"Admission Portal",
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	// v1 api
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.JWTPublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse jwt public key: %w", err)
	}
	mux.Handle("/v1/", newRouter(deps, publicKey, mp))

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux())

	// cors
	handler := controller.WithCORS(mux)

	// logger
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
