package apps

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
)

// Routes mounts the marketplace routes under the path where the caller
// mounts it. Typically: r.Mount("/apps", apps.Routes(handler, tokens))
func Routes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Catalog browsing; no token required.
	r.Get("/", h.ServeListApps)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/installed", h.ServeListInstalled)
		pr.Post("/{appID}/install", h.ServeInstallApp)
		pr.Post("/{appID}/uninstall", h.ServeUninstallApp)
		pr.Post("/{appID}/rate", h.ServeRateApp)
	})

	return r
}
