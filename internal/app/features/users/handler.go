// Package users serves the authenticated account: profile, liked events,
// marketing campaigns, social posts, ad campaigns, and the team roster.
// Every route is scoped to the bearer of the token; another user's data
// cannot be addressed from here.
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/htmlsanitize"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
)

// Handler handles /users/me requests.
type Handler struct {
	Store store.Store
	Log   *zap.Logger
}

// NewHandler creates a new users handler.
func NewHandler(s store.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Store: s,
		Log:   logger,
	}
}

// currentUser pulls the authenticated account from the request context,
// answering 401 when an anonymous request slipped past the middleware.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*sysauth.TokenUser, bool) {
	tu, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return nil, false
	}
	return tu, true
}

// ServeGetMe handles GET /users/me.
func (h *Handler) ServeGetMe(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.FindUserByID(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if user == nil {
		// Valid token for an account that no longer exists.
		httpjson.Error(w, http.StatusNotFound, "NOT_FOUND", "account no longer exists")
		return
	}

	user.PasswordHash = ""
	httpjson.Write(w, http.StatusOK, user)
}

// ServeUpdateMe handles PATCH /users/me.
// Only full_name, is_organizer, profile, and social_stats are writable;
// anything else in the body is ignored. The profile replaces wholesale, with
// the bio sanitized before it is stored.
func (h *Handler) ServeUpdateMe(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req updateMeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	if req.FullName != nil {
		name := normalize.Name(*req.FullName)
		if name == "" {
			httpjson.ValidationFailed(w, "Full name is required.", []string{"full_name"})
			return
		}
		req.FullName = &name
	}
	if req.Profile != nil {
		req.Profile.Bio = htmlsanitize.Sanitize(req.Profile.Bio)
		if req.Profile.Website != "" && !inputval.IsValidHTTPURL(req.Profile.Website) {
			httpjson.ValidationFailed(w, "Website must be an http or https URL.", []string{"profile.website"})
			return
		}
		if req.Profile.AvatarURL != "" && !inputval.IsValidHTTPURL(req.Profile.AvatarURL) {
			httpjson.ValidationFailed(w, "Avatar URL must be an http or https URL.", []string{"profile.avatar_url"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Store.UpdateUser(ctx, tu.ID, store.UserPatch{
		FullName:    req.FullName,
		IsOrganizer: req.IsOrganizer,
		Profile:     req.Profile,
		SocialStats: req.SocialStats,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	updated.PasswordHash = ""
	httpjson.Write(w, http.StatusOK, updated)
}

// ServeLikeEvent handles POST /users/me/likes/{eventID}.
// Liking is a set insert: repeats are no-ops. The id is shape-checked only;
// there is no event lookup on this path.
func (h *Handler) ServeLikeEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	eventID := chi.URLParam(r, "eventID")
	if !inputval.IsValidUUID(eventID) {
		httpjson.BadRequest(w, "event id must be a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.LikeEvent(ctx, tu.ID, eventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	user.PasswordHash = ""
	httpjson.Write(w, http.StatusOK, user)
}

// ServeUnlikeEvent handles DELETE /users/me/likes/{eventID}.
// Removing an id that was never liked succeeds and changes nothing.
func (h *Handler) ServeUnlikeEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	eventID := chi.URLParam(r, "eventID")
	if !inputval.IsValidUUID(eventID) {
		httpjson.BadRequest(w, "event id must be a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.UnlikeEvent(ctx, tu.ID, eventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	user.PasswordHash = ""
	httpjson.Write(w, http.StatusOK, user)
}
