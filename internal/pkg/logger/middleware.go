package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware creates request-logging middleware for Echo. When a
// New Relic transaction is present on the request context the latency
// and outcome are attached to it as custom attributes.
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())

			start := time.Now()
			path := c.Request().URL.Path

			err := next(c)

			latency := time.Since(start)
			statusCode := c.Response().Status
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn != nil {
				txn.AddAttribute("request_id", requestID)
				txn.AddAttribute("response_time_ms", latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			fields := []Field{
				String("method", c.Request().Method),
				String("path", path),
				String("client_ip", c.RealIP()),
				String("request_id", requestID),
				Int("status", statusCode),
				Duration("latency", latency),
			}
			if err != nil {
				fields = append(fields, Err(err))
				logger.Error("HTTP request failed", fields...)
				return err
			}

			logger.Info("HTTP request", fields...)
			return nil
		}
	}
}
