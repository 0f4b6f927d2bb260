package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
)

// RateLimit rejects requests above the limiter's rate with 429.
// Credential endpoints get their own stricter instance so a login
// brute-force cannot starve the rest of the API.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				response.RespondError(w, http.StatusTooManyRequests, "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
