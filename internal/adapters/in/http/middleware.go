package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"production/internal/core/domain/model/access"
	"production/internal/core/domain/model/kernel"
	"production/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Identity headers set by the authentication proxy in front of the service.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderStationID = "X-Station-ID"
)

const identityKey = "identity"

// Authenticate reads the caller identity from the request headers. Requests without a user or
// with an unknown role are rejected.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header

			userID := strings.TrimSpace(header.Get(HeaderUserID))
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing "+HeaderUserID+" header")
			}

			role, err := access.ParseRole(header.Get(HeaderUserRole))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or unknown "+HeaderUserRole+" header")
			}

			identity := access.Identity{UserID: userID, Role: role}
			if raw := strings.TrimSpace(header.Get(HeaderStationID)); raw != "" {
				stationID, err := kernel.UUIDFromString(raw)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "Invalid "+HeaderStationID+" header")
				}
				identity.Station = &stationID
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Authorize rejects callers whose role may not perform op.
func Authorize(op access.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !access.CanPerform(identityFrom(c).Role, op) {
				return errForbidden
			}
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) access.Identity {
	identity, _ := c.Get(identityKey).(access.Identity)
	return identity
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRoutePath: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}

// Instrument observes request latency per route and status.
func Instrument(m *metrics.ProductionMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusCode(err)
			}
			m.RecordHTTPRequest(c.Request().Method, c.Path(), status, time.Since(start))
			return err
		}
	}
}
