package types

import "context"

// ContextKey is the type for all keys stored in a request context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserRole  ContextKey = "ctx_user_role"
)

// GetRequestID returns the request id from the context
func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

// GetUserID returns the authenticated user's id from the context
func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

// GetUserRole returns the authenticated user's role from the context
func GetUserRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxUserRole).(UserRole); ok {
		return role
	}
	return ""
}

// IsAdmin reports whether the context principal has the Admin role
func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == UserRoleAdmin
}

func getString(ctx context.Context, key ContextKey) string {
	if value, ok := ctx.Value(key).(string); ok {
		return value
	}
	return ""
}

// DetachedContext copies the principal and request id onto a fresh background
// context. Asynchronous work (report generation, scheduled jobs) runs on a
// detached context so that cancelling the originating request does not cancel
// the job.
func DetachedContext(ctx context.Context) context.Context {
	detached := context.Background()
	if requestID := GetRequestID(ctx); requestID != "" {
		detached = context.WithValue(detached, CtxRequestID, requestID)
	}
	if userID := GetUserID(ctx); userID != "" {
		detached = context.WithValue(detached, CtxUserID, userID)
	}
	if role := GetUserRole(ctx); role != "" {
		detached = context.WithValue(detached, CtxUserRole, role)
	}
	return detached
}
