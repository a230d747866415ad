package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	httperrors "rentomobile/internal/errors"
)

// AdminTokenMiddleware guards operational endpoints with a static bearer
// token. An empty token disables the endpoints entirely.
func AdminTokenMiddleware(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" {
				deny(w, httperrors.ErrForbidden("admin endpoints are disabled"))
				return
			}
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if !strings.HasPrefix(header, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				deny(w, httperrors.ErrUnauthorized("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, e *httperrors.HTTPError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
