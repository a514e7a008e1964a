package middleware

import (
	"net/http"

	"github.com/Dammmup/detsad-f-sub001/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly gates every payroll mutation: only the console's admin role may
// generate, adjust or transition records.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid access token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "Admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
