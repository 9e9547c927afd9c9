// Package utils provides helpers shared by the vault client and the blob
// server: typed context keys, JSON response writing, the resty client,
// admin JWT issue and validation, and UUIDv7 generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// SubjectCtxKey holds the subject of a validated admin token.
	SubjectCtxKey = contextKey("subject")
	// TraceIDCtxKey holds the per-request trace id set by the server middleware.
	TraceIDCtxKey = contextKey("traceID")
)

// GetSubjectFromContext retrieves the admin token subject from ctx.
//
// ok is false when the request carried no validated token.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok && subject != ""
}

// GetTraceIDFromContext retrieves the request trace id from ctx.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok
}
