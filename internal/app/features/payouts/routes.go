package payouts

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
)

// Routes mounts the payout routes under the path where the caller mounts it.
// Typically: r.Mount("/payouts", payouts.Routes(handler, tokens))
func Routes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/", h.ServeListPayouts)
		pr.Post("/", h.ServeInitiatePayout)
		pr.Get("/summary", h.ServeSummary)
		pr.Post("/{payoutID}/cancel", h.ServeCancelPayout)
	})

	return r
}
