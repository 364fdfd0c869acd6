package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ParseFromRequest extracts and validates a Bearer JWT from the Authorization
// header and returns the Principal it carries.
func ParseFromRequest(r *http.Request, secret string) (*Principal, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// Middleware returns HTTP middleware that authenticates requests and injects
// the Principal into the request context. Paths listed in allowUnauthenticated
// bypass authentication (e.g., health checks, login).
func Middleware(secret string, allowUnauthenticated ...string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, p := range allowUnauthenticated {
		allow[strings.TrimSpace(p)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allow[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			p, err := ParseFromRequest(r, secret)
			if err != nil {
				http.Error(w, "unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(r *http.Request) (*Principal, error) {
	p, ok := FromContext(r.Context())
	if !ok {
		return nil, errors.New("missing principal")
	}
	return p, nil
}
