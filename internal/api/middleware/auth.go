package middleware

import (
	"net/http"
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// RequireAuth rejects requests without a valid bearer token and attaches
// the token's user, account scope and role to the request context.
func RequireAuth(issuer auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.RespondError(w, http.StatusUnauthorized, "authorization required", nil)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "malformed authorization header", nil)
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired token", nil)
				return
			}

			ctx := auth.WithUser(r.Context(), claims.UserID, claims.AccountID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner gates account-management routes to the account owner.
// Must run after RequireAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.RoleFromContext(r.Context()) != model.TeamRoleOwner {
			response.RespondError(w, http.StatusForbidden, "owner role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
