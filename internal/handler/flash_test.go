package handler

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func flashCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:  name,
		Value: base64.URLEncoding.EncodeToString([]byte(value)),
	}
}

func TestFlashMessages(t *testing.T) {
	t.Run("flash renders once and the cookie is cleared", func(t *testing.T) {
		h, _, _, _, _, _ := testHandler()

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(flashCookie(flashCookieError, "Invalid email or password"))
		rr := httptest.NewRecorder()
		h.LoginGetHandler(rr, req)

		assert.Contains(t, rr.Body.String(), "error=Invalid email or password")

		var cleared bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == flashCookieError {
				cleared = c.MaxAge < 0
			}
		}
		assert.True(t, cleared)
	})

	t.Run("tampered flash cookie cannot inject markup", func(t *testing.T) {
		h, _, _, _, _, _ := testHandler()

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(flashCookie(flashCookieError, `<img src=x onerror=alert(1)>`))
		rr := httptest.NewRecorder()
		h.LoginGetHandler(rr, req)

		body := rr.Body.String()
		assert.NotContains(t, body, "<img")
		assert.Contains(t, body, "&lt;img")
	})

	t.Run("undecodable flash cookie is ignored", func(t *testing.T) {
		h, _, _, _, _, _ := testHandler()

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: flashCookieError, Value: "%%%not-base64%%%"})
		rr := httptest.NewRecorder()
		h.LoginGetHandler(rr, req)

		assert.Contains(t, rr.Body.String(), "error= ")
	})
}
