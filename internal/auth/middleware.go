package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/response"
)

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims stores the authenticated claims on ctx.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the claims stored by RequireAuth, nil if absent.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// UserID returns the authenticated user id from ctx.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	claims := ClaimsFrom(ctx)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.ID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtManager *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.BusinessError(w, "Not authenticated", customError.WrapUnauthorized(ErrMissingToken))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.BusinessError(w, "Not authenticated", customError.WrapUnauthorized(ErrInvalidToken))
				return
			}

			claims, err := jwtManager.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				response.BusinessError(w, "Not authenticated", customError.WrapUnauthorized(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// AdminLookup reports whether the user holds admin rights right now.
type AdminLookup func(ctx context.Context, userID uuid.UUID) (bool, error)

// RequireAdmin must run after RequireAuth. The is_admin claim is only a hint;
// lookup decides, so revoked rights take effect before the token expires.
func RequireAdmin(lookup AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r.Context())
			if claims == nil {
				response.BusinessError(w, "Not authenticated", customError.WrapUnauthorized(ErrMissingToken))
				return
			}
			if !claims.IsAdmin {
				response.BusinessError(w, "Admin only", customError.WrapForbidden())
				return
			}

			userID, err := claims.ID()
			if err != nil {
				response.BusinessError(w, "Not authenticated", customError.WrapUnauthorized(ErrInvalidToken))
				return
			}
			isAdmin, err := lookup(r.Context(), userID)
			if err != nil {
				response.BusinessError(w, "Failed to check admin rights", err)
				return
			}
			if !isAdmin {
				response.BusinessError(w, "Admin only", customError.WrapForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
