package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// campaignTypes are the accepted campaign channels.
var campaignTypes = map[string]bool{
	"email":  true,
	"social": true,
	"ads":    true,
}

// campaignStatuses are the lifecycle states a campaign or ad can be put in.
var campaignStatuses = map[string]bool{
	models.CampaignDraft:     true,
	models.CampaignActive:    true,
	models.CampaignPaused:    true,
	models.CampaignCompleted: true,
}

// ServeListCampaigns handles GET /users/me/campaigns.
func (h *Handler) ServeListCampaigns(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	campaigns, err := h.Store.ListMarketingCampaigns(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, campaigns)
}

// ServeCreateCampaign handles POST /users/me/campaigns.
func (h *Handler) ServeCreateCampaign(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req campaignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.All(), res.Fields())
		return
	}
	req.Type = normalize.Status(req.Type)
	if req.Type != "" && !campaignTypes[req.Type] {
		httpjson.ValidationFailed(w, "Type must be one of: email, social, ads.", []string{"type"})
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

	created, err := h.Store.AddMarketingCampaign(ctx, tu.ID, models.MarketingCampaign{
		Name:      normalize.Name(req.Name),
		Type:      req.Type,
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

// ServeUpdateCampaign handles PATCH /users/me/campaigns/{campaignID}.
func (h *Handler) ServeUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	campaignID := chi.URLParam(r, "campaignID")

	var req campaignPatchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Status != nil {
		status := normalize.Status(*req.Status)
		if !campaignStatuses[status] {
			httpjson.ValidationFailed(w, "Status must be one of: draft, active, paused, completed.", []string{"status"})
			return
		}
		req.Status = &status
	}
	if req.Budget != nil && *req.Budget < 0 {
		httpjson.ValidationFailed(w, "Budget cannot be negative.", []string{"budget"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Store.UpdateMarketingCampaign(ctx, tu.ID, campaignID, store.CampaignPatch{
		Name:        req.Name,
		Status:      req.Status,
		Budget:      req.Budget,
		Spent:       req.Spent,
		Reach:       req.Reach,
		Clicks:      req.Clicks,
		Conversions: req.Conversions,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// ServeDeleteCampaign handles DELETE /users/me/campaigns/{campaignID}.
func (h *Handler) ServeDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	campaignID := chi.URLParam(r, "campaignID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.DeleteMarketingCampaign(ctx, tu.ID, campaignID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
