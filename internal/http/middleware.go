package http

import (
	"net"
	"net/http"

	"github.com/rogerio-castellano/inventory-audit/internal/auth"
	rl "github.com/rogerio-castellano/inventory-audit/internal/http/rate_limiter"
)

// AuthMiddleware rejects requests without a valid bearer token.
// Authentication happens here, before any access-policy check runs; handlers
// read the caller's identity from the same verified token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := auth.TokenClaims(r.Header.Get("Authorization")); err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware applies the per-IP limiter; used on the public auth
// endpoints only.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
