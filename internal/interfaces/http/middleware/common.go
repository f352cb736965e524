package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocklink/connector/internal/infrastructure/logger"
)

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that ensures every request has a
// request ID. An incoming X-Request-ID header is honored; otherwise a
// new one is generated. The ID is echoed back in the response header
// and attached to the request context for log enrichment.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDHeader, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(
			logger.WithRequestID(c.Request.Context(), requestID),
		)

		c.Next()
	}
}

// BodyLimit returns a middleware that caps request body size. A zero or
// negative limit disables the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// TenantContext returns a middleware that copies tenant and connection
// identifiers from request headers into the request context so handlers
// and logs can see them without re-reading headers.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
			ctx = logger.WithTenantID(ctx, tenantID)
		}
		if connectionID := c.GetHeader("X-Connection-ID"); connectionID != "" {
			ctx = logger.WithConnectionID(ctx, connectionID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
