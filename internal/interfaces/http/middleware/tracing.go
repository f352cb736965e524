package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stocklink/connector/internal/infrastructure/logger"
)

// TracingConfig holds tracing middleware configuration
type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// Tracing returns OpenTelemetry tracing middleware backed by otelgin.
// Disabled tracing is a pass-through. Register TracingAttributes after it
// to enrich the span while it is still recording.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// TracingAttributes returns a middleware that enriches the active span
// with the request ID and the tenant/connection identifiers. It must run
// inside the Tracing middleware's span, i.e. be registered after it.
func TracingAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
		c.Next()
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := logger.RequestIDFromContext(c.Request.Context()); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
		span.SetAttributes(attribute.String("tenant_id", tenantID))
	}
	if connectionID := c.GetHeader("X-Connection-ID"); connectionID != "" {
		span.SetAttributes(attribute.String("connection_id", connectionID))
	}
}
