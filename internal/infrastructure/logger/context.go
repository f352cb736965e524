package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey    contextKey = "request_id"
	tenantIDKey     contextKey = "tenant_id"
	connectionIDKey contextKey = "connection_id"
	entityKey       contextKey = "entity"
)

// WithRequestID returns a new context with the request ID attached
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithTenantID returns a new context with the tenant ID attached
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// WithConnectionID returns a new context with the connection ID attached
func WithConnectionID(ctx context.Context, connectionID string) context.Context {
	return context.WithValue(ctx, connectionIDKey, connectionID)
}

// WithEntity returns a new context with the sync entity type attached
func WithEntity(ctx context.Context, entity string) context.Context {
	return context.WithValue(ctx, entityKey, entity)
}

// RequestIDFromContext extracts the request ID from the context
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns a logger enriched with whatever identifiers the
// context carries. Absent identifiers are simply not logged.
func FromContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := make([]zap.Field, 0, 4)
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		fields = append(fields, zap.String("request_id", v))
	}
	if v, ok := ctx.Value(tenantIDKey).(string); ok && v != "" {
		fields = append(fields, zap.String("tenant_id", v))
	}
	if v, ok := ctx.Value(connectionIDKey).(string); ok && v != "" {
		fields = append(fields, zap.String("connection_id", v))
	}
	if v, ok := ctx.Value(entityKey).(string); ok && v != "" {
		fields = append(fields, zap.String("entity", v))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
