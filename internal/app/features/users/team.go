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

// teamStatuses are the states a collaborator can be in.
var teamStatuses = map[string]bool{
	models.TeamInvited: true,
	models.TeamActive:  true,
}

// ServeListTeam handles GET /users/me/team.
func (h *Handler) ServeListTeam(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	members, err := h.Store.ListTeamMembers(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, members)
}

// ServeAddTeamMember handles POST /users/me/team.
// A member added without a status is active immediately; invited members
// stay unjoined until their status flips.
func (h *Handler) ServeAddTeamMember(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req teamMemberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.All(), res.Fields())
		return
	}
	req.Status = normalize.Status(req.Status)
	if req.Status != "" && !teamStatuses[req.Status] {
		httpjson.ValidationFailed(w, "Status must be one of: invited, active.", []string{"status"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.AddTeamMember(ctx, tu.ID, models.TeamMember{
		Email:  normalize.Email(req.Email),
		Name:   normalize.Name(req.Name),
		Role:   normalize.Role(req.Role),
		Status: req.Status,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// ServeUpdateTeamMember handles PATCH /users/me/team/{memberID}.
func (h *Handler) ServeUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	memberID := chi.URLParam(r, "memberID")

	var req teamMemberPatchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Status != nil {
		status := normalize.Status(*req.Status)
		if !teamStatuses[status] {
			httpjson.ValidationFailed(w, "Status must be one of: invited, active.", []string{"status"})
			return
		}
		req.Status = &status
	}
	if req.Role != nil {
		role := normalize.Role(*req.Role)
		req.Role = &role
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Store.UpdateTeamMember(ctx, tu.ID, memberID, store.TeamMemberPatch{
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// ServeRemoveTeamMember handles DELETE /users/me/team/{memberID}.
func (h *Handler) ServeRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	memberID := chi.URLParam(r, "memberID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.RemoveTeamMember(ctx, tu.ID, memberID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
