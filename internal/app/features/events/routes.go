package events

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Routes mounts the event routes under the path where the caller mounts it.
// Typically: r.Mount("/events", events.Routes(handler, tokens))
func Routes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Public listing; no token required.
	r.Get("/public", h.ServePublicEvents)

	// Ticket purchases; any signed-in account can buy.
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Post("/{eventID}/orders", h.ServeCreateOrder)
	})

	// Event management; organizer accounts only.
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Use(tm.RequireRole(models.RoleOrganizer, models.RoleAdmin))

		pr.Get("/", h.ServeListEvents)
		pr.Post("/", h.ServeCreateEvent)
		pr.Get("/{eventID}", h.ServeGetEvent)
		pr.Patch("/{eventID}", h.ServeUpdateEvent)
		pr.Delete("/{eventID}", h.ServeDeleteEvent)
		pr.Post("/{eventID}/publish", h.ServePublishEvent)
	})

	return r
}

// OrderRoutes mounts the buyer-facing order history.
// Typically: r.Mount("/orders", events.OrderRoutes(handler, tokens))
func OrderRoutes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Get("/", h.ServeListOrders)
	})

	return r
}
