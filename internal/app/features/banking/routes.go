package banking

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
)

// Routes mounts the bank-account routes under the path where the caller
// mounts it. Typically: r.Mount("/bank-accounts", banking.Routes(handler, tokens))
func Routes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/", h.ServeListAccounts)
		pr.Post("/", h.ServeCreateAccount)
		pr.Patch("/{accountID}", h.ServeUpdateAccount)
		pr.Delete("/{accountID}", h.ServeDeleteAccount)
		pr.Post("/{accountID}/primary", h.ServeSetPrimary)
	})

	return r
}
