// Package logging holds the prefixed log helpers shared by the server and
// its internal packages.
package logging

import (
	"context"
	"log"
)

type contextKey string

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey contextKey = "request_id"

// Info logs an info-level message.
func Info(format string, v ...any) {
	log.Printf("[INFO] "+format, v...)
}

// Warn logs a warning-level message.
func Warn(format string, v ...any) {
	log.Printf("[WARN] "+format, v...)
}

// Fatal logs a fatal error and exits.
func Fatal(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}

// InfoCtx logs an info-level message tagged with the request id, if any.
func InfoCtx(ctx context.Context, format string, v ...any) {
	if reqID := RequestID(ctx); reqID != "" {
		Info("[request_id=%v] "+format, append([]any{reqID}, v...)...)
		return
	}
	Info(format, v...)
}

// WarnCtx logs a warning-level message tagged with the request id, if any.
func WarnCtx(ctx context.Context, format string, v ...any) {
	if reqID := RequestID(ctx); reqID != "" {
		Warn("[request_id=%v] "+format, append([]any{reqID}, v...)...)
		return
	}
	Warn(format, v...)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// WithRequestID returns a copy of ctx carrying reqID.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}
