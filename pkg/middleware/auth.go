// Package middleware provides the HTTP middleware stack: credential
// verification, the admin role gate, CORS, request logging, panic recovery,
// and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/spokeworks/gearhub/pkg/auth"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/metrics"
	"github.com/spokeworks/gearhub/pkg/response"
)

// claimsKey is the unexported context key for the verified identity.
type claimsKey struct{}

// ClaimsFromCtx returns the verified identity attached by RequireAuth.
// ok is false on routes that did not pass through RequireAuth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// EmailFromCtx returns the verified email, or "" if the request is
// unauthenticated.
func EmailFromCtx(ctx context.Context) string {
	if c, ok := ClaimsFromCtx(ctx); ok {
		return c.Email
	}
	return ""
}

// RequireAuth verifies the Bearer credential on a request.
//
//   - No Authorization header → 401, handler never runs.
//   - Header present but not of the form "Bearer <token>", or the token is
//     invalid or expired → 403.
//   - Valid token → claims stored in the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
			response.Unauthorized(w)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			metrics.AuthFailures.WithLabelValues("forbidden").Inc()
			response.Forbidden(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("token rejected", "error", err.Error())
			metrics.AuthFailures.WithLabelValues("forbidden").Inc()
			response.Forbidden(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleLookup resolves the stored role for an email. A missing user record
// must be reported as an error, not an empty role, so the gate can log the
// distinction.
type RoleLookup func(ctx context.Context, email string) (string, error)

// AdminRole is the role value that grants elevated capability.
const AdminRole = "admin"

// RequireAdmin gates a route on the admin role. Must be chained after
// RequireAuth. The role is a point read on every request; a user promoted
// or demoted mid-session takes effect immediately.
//
// A missing user record fails closed with 403 rather than panicking.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromCtx(r.Context())
			if !ok {
				metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
				response.Unauthorized(w)
				return
			}

			role, err := lookup(r.Context(), claims.Email)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("admin gate: role lookup failed",
					"email", claims.Email, "error", err.Error())
				metrics.AuthFailures.WithLabelValues("forbidden").Inc()
				response.Forbidden(w)
				return
			}
			if role != AdminRole {
				metrics.AuthFailures.WithLabelValues("forbidden").Inc()
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
