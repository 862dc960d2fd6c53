package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/shuzaifak/crowd/internal/app/system/ratelimit"
)

// Routes returns the router for the account endpoints. Mounted under /auth;
// neither endpoint requires a token. When the handler carries a limiter,
// both endpoints sit behind it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	if h.Limits != nil {
		r.Use(ratelimit.Middleware(h.Limits, h.Log))
	}

	r.Post("/signup", h.ServeSignup)
	r.Post("/login", h.ServeLogin)

	return r
}
