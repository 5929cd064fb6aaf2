package middlewares

import (
	"context"
	"net/http"

	"github.com/szto/foxy-reminder/internal/services/auth_services"
)

type contextKey string

const ownerKey contextKey = "owner"

func GetOwnerFromContext(ctx context.Context) (string, bool) {
	ownerVal := ctx.Value(ownerKey)
	owner, ok := ownerVal.(string)
	return owner, ok
}

// ResolveOwner reads the session cookie and returns the authenticated
// username, or "" when the request carries no valid session.
func ResolveOwner(r *http.Request, auth *auth_services.AuthService, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	owner, err := auth.ParseToken(cookie.Value)
	if err != nil {
		return ""
	}
	return owner
}

// APIAuth guards the JSON surface: requests without a resolvable owner get a
// plain 401.
func APIAuth(auth *auth_services.AuthService, cookieName string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := ResolveOwner(r, auth, cookieName)
		if owner == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PageAuth guards the page surface: requests without a resolvable owner are
// redirected to the login page with the unauthorized marker.
func PageAuth(auth *auth_services.AuthService, cookieName string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := ResolveOwner(r, auth, cookieName)
		if owner == "" {
			http.Redirect(w, r, "/login?unauthorized=True", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
