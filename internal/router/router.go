package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/postling-dev/postling/internal/handler"
	mw "github.com/postling-dev/postling/internal/middleware"
	"github.com/postling-dev/postling/internal/middleware/metrics"
	rl "github.com/postling-dev/postling/internal/middleware/ratelimiter"
	"github.com/postling-dev/postling/internal/setup"
)

// New configures the application router with all routes.
// Login is rate limited by client IP and by submitted email, so a targeted
// account cannot be brute forced from many addresses.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(mw.SecurityHeaders(deps.Handler.Public.SecureCookies))
	r.Use(metrics.Middleware)

	r.Get("/health", handler.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	})
	r.Get("/signup", h.SignupGetHandler)
	r.Post("/signup", h.SignupPostHandler)
	r.Get("/signup/verify", h.VerifyGetHandler)
	r.Get("/login", h.LoginGetHandler)
	r.With(
		mw.RateLimit(rl.New(1, 5, time.Hour), mw.GetIP),
		mw.RateLimit(rl.New(5.0/600, 5, time.Hour), mw.GetEmailFromForm),
	).Post("/login", h.LoginPostHandler)
	r.Post("/logout", h.LogoutHandler)

	// Session-only routes
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.NeedAuth())

		r.Get("/posts", h.PostsGetHandler)
		r.Get("/posts/new", h.PostNewGetHandler)
		r.Post("/posts", h.PostCreateHandler)
		r.Get("/posts/{id}", h.PostGetHandler)
		r.Get("/posts/{id}/edit", h.PostEditGetHandler)
		r.Post("/posts/{id}", h.PostUpdateHandler)
		r.Post("/posts/{id}/delete", h.PostDeleteHandler)
	})

	return r
}
