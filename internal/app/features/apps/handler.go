// Package apps serves the marketplace: the public catalog, per-user
// installations, and ratings. Ratings fold into the catalog row's running
// aggregate; individual submissions are acknowledged but not retained.
package apps

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
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
)

// Handler handles /apps requests.
type Handler struct {
	Store store.Store
	Log   *zap.Logger
}

// NewHandler creates a new apps handler.
func NewHandler(s store.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Store: s,
		Log:   logger,
	}
}

type ratingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000" label:"Comment"`
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

// ServeListApps handles GET /apps. The catalog is public; no token required.
func (h *Handler) ServeListApps(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	apps, err := h.Store.GetApps(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, apps)
}

// ServeListInstalled handles GET /apps/installed, the caller's active
// installations.
func (h *Handler) ServeListInstalled(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	installs, err := h.Store.GetUserInstallations(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, installs)
}

// ServeInstallApp handles POST /apps/{appID}/install. Reinstalling after an
// uninstall revives the original installation row; installing twice is a 409.
func (h *Handler) ServeInstallApp(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	install, err := h.Store.InstallApp(ctx, tu.ID, chi.URLParam(r, "appID"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("app installed",
		zap.String("app_id", install.AppID),
		zap.String("user_id", tu.ID))
	httpjson.Write(w, http.StatusCreated, install)
}

// ServeUninstallApp handles POST /apps/{appID}/uninstall.
func (h *Handler) ServeUninstallApp(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.UninstallApp(ctx, tu.ID, chi.URLParam(r, "appID")); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("app uninstalled",
		zap.String("app_id", chi.URLParam(r, "appID")),
		zap.String("user_id", tu.ID))
	w.WriteHeader(http.StatusNoContent)
}

// ServeRateApp handles POST /apps/{appID}/rate. Whole stars one through
// five; installing first is not required.
func (h *Handler) ServeRateApp(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req ratingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.First(), res.Fields())
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		httpjson.ValidationFailed(w, "Rating must be between 1 and 5.", []string{"rating"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	receipt, err := h.Store.RateApp(ctx, tu.ID, chi.URLParam(r, "appID"), req.Rating, htmlsanitize.Sanitize(req.Comment))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, receipt)
}
