package users

import (
	"context"
	"net/http"

	"github.com/shuzaifak/crowd/internal/app/system/htmlsanitize"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// postStatuses are the lifecycle states of a social post.
var postStatuses = map[string]bool{
	"draft":     true,
	"scheduled": true,
	"posted":    true,
}

// ServeListPosts handles GET /users/me/posts.
func (h *Handler) ServeListPosts(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	posts, err := h.Store.ListSocialPosts(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

// ServeAddPost handles POST /users/me/posts.
// Content passes through the sanitizer; engagement counters start at zero.
func (h *Handler) ServeAddPost(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.All(), res.Fields())
		return
	}
	req.Status = normalize.Status(req.Status)
	if req.Status != "" && !postStatuses[req.Status] {
		httpjson.ValidationFailed(w, "Status must be one of: draft, scheduled, posted.", []string{"status"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.AddSocialPost(ctx, tu.ID, models.SocialPost{
		Platform:     normalize.Platform(req.Platform),
		Content:      htmlsanitize.Sanitize(req.Content),
		Status:       req.Status,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// ServeListAds handles GET /users/me/ads.
func (h *Handler) ServeListAds(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ads, err := h.Store.ListAdCampaigns(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, ads)
}

// ServeAddAd handles POST /users/me/ads.
func (h *Handler) ServeAddAd(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req adRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.All(), res.Fields())
		return
	}
	req.Status = normalize.Status(req.Status)
	if req.Status != "" && !campaignStatuses[req.Status] {
		httpjson.ValidationFailed(w, "Status must be one of: draft, active, paused, completed.", []string{"status"})
		return
	}
	if req.Budget < 0 {
		httpjson.ValidationFailed(w, "Budget cannot be negative.", []string{"budget"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.AddAdCampaign(ctx, tu.ID, models.AdCampaign{
		Name:      normalize.Name(req.Name),
		Platform:  normalize.Platform(req.Platform),
		Status:    req.Status,
		Budget:    req.Budget,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}
