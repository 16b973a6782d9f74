package middlewares

import (
	"context"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

type ctxKey string

const (
	ctxUserKey      ctxKey = "auth_user"
	ctxRequestIDKey ctxKey = "request_id"
)

// AuthUser is the authorized context attached to every authenticated
// request: the verified identity plus the caller's normalized role state.
// Downstream handlers read roles from here and never re-check policy.
type AuthUser struct {
	ID         string
	Email      string
	Nama       string
	Roles      []rbac.Role
	ActiveRole rbac.Role
}

// WithUser injects the authorized user into the context.
func WithUser(ctx context.Context, u *AuthUser) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// GetUser returns the authorized user, or nil when no auth middleware ran.
func GetUser(ctx context.Context) *AuthUser {
	if v := ctx.Value(ctxUserKey); v != nil {
		if u, ok := v.(*AuthUser); ok {
			return u
		}
	}
	return nil
}

// MustGetUser returns the authorized user or panics. Only for handlers
// that are always registered behind RequireAuth/RequireRole.
func MustGetUser(ctx context.Context) *AuthUser {
	u := GetUser(ctx)
	if u == nil {
		panic("middlewares: no auth user in context")
	}
	return u
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID returns the request id, or "" when the middleware did not
// run.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
