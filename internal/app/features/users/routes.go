package users

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
)

// Routes returns the router for the /users subtree. Every route requires a
// signed-in user; the token decides whose data is addressed.
func Routes(h *Handler, tm *sysauth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Use(tm.RequireSignedIn)

	r.Get("/me", h.ServeGetMe)
	r.Patch("/me", h.ServeUpdateMe)

	r.Post("/me/likes/{eventID}", h.ServeLikeEvent)
	r.Delete("/me/likes/{eventID}", h.ServeUnlikeEvent)

	r.Route("/me/campaigns", func(r chi.Router) {
		r.Get("/", h.ServeListCampaigns)
		r.Post("/", h.ServeCreateCampaign)
		r.Patch("/{campaignID}", h.ServeUpdateCampaign)
		r.Delete("/{campaignID}", h.ServeDeleteCampaign)
	})

	r.Route("/me/posts", func(r chi.Router) {
		r.Get("/", h.ServeListPosts)
		r.Post("/", h.ServeAddPost)
	})

	r.Route("/me/ads", func(r chi.Router) {
		r.Get("/", h.ServeListAds)
		r.Post("/", h.ServeAddAd)
	})

	r.Route("/me/team", func(r chi.Router) {
		r.Get("/", h.ServeListTeam)
		r.Post("/", h.ServeAddTeamMember)
		r.Patch("/{memberID}", h.ServeUpdateTeamMember)
		r.Delete("/{memberID}", h.ServeRemoveTeamMember)
	})

	return r
}
