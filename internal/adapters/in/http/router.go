package http

import (
	"log/slog"
	"net/http"

	"production/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BaseURL = "/api/v1"

// RouterConfig carries what NewRouter needs besides the server.
type RouterConfig struct {
	Metrics  *metrics.ProductionMetrics
	Gatherer prometheus.Gatherer
	OpenAPI  *openapi3.T
	Logger   *slog.Logger
}

// NewRouter builds the echo instance: API routes, /health, /metrics, /openapi.json and the
// swagger UI under /swagger/.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = server.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(Instrument(cfg.Metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if cfg.OpenAPI != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.OpenAPI)
		})
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	}

	RegisterHandlers(e, server, BaseURL)

	return e
}
