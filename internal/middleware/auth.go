package middleware

import (
	"context"
	"net/http"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/jwt"
)

// Key to store the session user in the request context
type key int

const UserKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth requires a valid session cookie. Browsers without one are sent
// to the login page; there is no API-style 401 in a server-rendered app.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	accessCookie, err := r.Cookie("accessToken")
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.DecodeToken(accessCookie.Value)
	if err != nil {
		return nil, err
	}

	user, err := jwt.UserFromToken(token)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserFromContext returns the session user placed there by NeedAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
