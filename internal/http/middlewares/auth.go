package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	"github.com/pondokdigital/pesantren-api/internal/identity"
	"github.com/pondokdigital/pesantren-api/internal/metrics"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/profile"
	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(ah[len("Bearer "):]), true
}

// resolveUser authenticates the token and loads the caller's profile into
// an AuthUser. Profile and identity are re-read on every request: role
// assignment can change between requests and a stale allow is a security
// defect, so nothing here is cached.
//
// Returned values: (user, nil) on success; (nil, appErr) when the request
// must be terminated. When the profile row is missing, user is returned
// with zero roles and missingProfile is true so each caller applies its
// own contract.
func resolveUser(r *http.Request, resolver identity.Resolver, store profile.Store) (u *AuthUser, missingProfile bool, appErr *httperrors.AppError) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, false, httperrors.ErrTokenMissing
	}

	id, err := resolver.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			return nil, false, httperrors.ErrTokenInvalid
		}
		return nil, false, httperrors.ErrServerError.WithCause(err)
	}

	p, err := store.GetByUserID(r.Context(), id.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return &AuthUser{ID: id.ID, Email: id.Email}, true, nil
		}
		return nil, false, httperrors.ErrServerError.WithCause(err)
	}

	return &AuthUser{
		ID:         id.ID,
		Email:      id.Email,
		Nama:       p.Nama,
		Roles:      p.Roles,
		ActiveRole: p.ActiveRole,
	}, false, nil
}

// RequireAuth authenticates the bearer token and attaches the authorized
// user to the context without any role check. A missing profile degrades
// to zero roles rather than failing the request, so routes open to any
// authenticated caller always see a uniform context shape.
func RequireAuth(resolver identity.Resolver, store profile.Store) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _, appErr := resolveUser(r, resolver, store)
			if appErr != nil {
				writeAuthError(w, r, appErr)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireRole authenticates, loads the profile and enforces the role
// policy. Denials terminate here: downstream handlers never re-check
// roles and never run on a deny.
func RequireRole(resolver identity.Resolver, store profile.Store, roles ...rbac.Role) Middleware {
	required := append([]rbac.Role(nil), roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, missingProfile, appErr := resolveUser(r, resolver, store)
			if appErr != nil {
				writeAuthError(w, r, appErr)
				return
			}
			if missingProfile {
				// Role-gated routes need a profile; never default to a
				// permissive role.
				metrics.IncAuthzDenied("profile_not_found")
				writeAuthError(w, r, httperrors.ErrProfileNotFound)
				return
			}

			switch decision := rbac.Decide(u.Roles, u.ActiveRole, required); decision {
			case rbac.DenyNotRequired:
				metrics.IncAuthzDenied(decision.String())
				writeAuthError(w, r, httperrors.ErrAccessDenied.
					WithMessage(fmt.Sprintf("Role '%s' tidak memiliki akses ke resource ini", u.ActiveRole)).
					WithRequiredRoles(rbac.Strings(required)))
				return

			case rbac.DenyRoleMismatch:
				metrics.IncAuthzDenied(decision.String())
				logger.From(r.Context()).Warn("active role outside assigned set",
					logger.UserID(u.ID),
					logger.ActiveRole(string(u.ActiveRole)),
					logger.Roles(rbac.Strings(u.Roles)),
				)
				writeAuthError(w, r, httperrors.ErrInvalidRole)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, appErr *httperrors.AppError) {
	if appErr.HTTPStatus == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
	}
	if appErr.Err != nil {
		logger.From(r.Context()).Error("auth middleware failure",
			logger.Path(r.URL.Path),
			logger.Err(appErr.Err),
		)
	}
	httperrors.WriteError(w, appErr)
}
