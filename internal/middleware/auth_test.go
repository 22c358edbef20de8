package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/jwt"
)

func protectedHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(42), user.Id)
		w.WriteHeader(http.StatusOK)
	})
}

func TestNeedAuth(t *testing.T) {
	jwtSvc := jwt.New("secret", time.Hour)
	mw := NewAuth(jwtSvc)

	t.Run("valid cookie passes through", func(t *testing.T) {
		token, err := jwtSvc.NewToken(domain.User{Id: 42, Email: "a@x.com"})
		require.NoError(t, err)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		mw.NeedAuth()(protectedHandler(t, &called)).ServeHTTP(rr, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing cookie redirects to login", func(t *testing.T) {
		called := false
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rr := httptest.NewRecorder()

		mw.NeedAuth()(protectedHandler(t, &called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("garbage token redirects to login", func(t *testing.T) {
		called := false
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
		rr := httptest.NewRecorder()

		mw.NeedAuth()(protectedHandler(t, &called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
	})
}
