package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnnotateRequest copies the request id onto the active span and logs
// failed requests with their trace id. It must run after otelecho and RequestID.
func AnnotateRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		span := trace.SpanFromContext(ctx)

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		if requestID != "" {
			span.SetAttributes(attribute.String("request.id", requestID))
		}

		err := next(c)

		status := c.Response().Status
		if err != nil || status >= 500 {
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.String("requestId", requestID),
				slog.String("module", "rest"),
			}
			if sc := span.SpanContext(); sc.HasTraceID() {
				attrs = append(attrs, slog.String("traceId", sc.TraceID().String()))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			slog.WarnContext(ctx, "Request failed", attrs...)
		}

		return err
	}
}
