// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appsfeature "github.com/shuzaifak/crowd/internal/app/features/apps"
	authfeature "github.com/shuzaifak/crowd/internal/app/features/auth"
	bankingfeature "github.com/shuzaifak/crowd/internal/app/features/banking"
	eventsfeature "github.com/shuzaifak/crowd/internal/app/features/events"
	healthfeature "github.com/shuzaifak/crowd/internal/app/features/health"
	payoutsfeature "github.com/shuzaifak/crowd/internal/app/features/payouts"
	usersfeature "github.com/shuzaifak/crowd/internal/app/features/users"
	"github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, store connection, schema setup, and
// the Startup hook have completed. It creates the chi router, applies the
// CORS policy and the global token middleware, and mounts one feature router
// per API area. Every feature talks to the store contract only, so the router
// looks identical over either backend.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenIssuer, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: verifies a presented bearer token and loads its
	// user into context. Anonymous requests pass through; the per-feature
	// RequireSignedIn/RequireRole guards decide what they may reach.
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Store, deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Signup and login, shielded from brute force when a limit is configured
	authHandler := authfeature.NewHandler(deps.Store, tokens, logger)
	if appCfg.AuthRateLimit > 0 {
		authHandler.Limits = ratelimit.New(appCfg.AuthRateLimit, appCfg.AuthRateWindow)
	}
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Account profile, likes, marketing campaigns, social posts, ads, team
	usersHandler := usersfeature.NewHandler(deps.Store, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, tokens))

	// Events: public listing, organizer management, ticket purchases
	eventsHandler := eventsfeature.NewHandler(deps.Store, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, tokens))
	r.Mount("/orders", eventsfeature.OrderRoutes(eventsHandler, tokens))

	// Payout destinations, always masked in responses
	bankingHandler := bankingfeature.NewHandler(deps.Store, deps.Codec, logger)
	r.Mount("/bank-accounts", bankingfeature.Routes(bankingHandler, tokens))

	// Balances and withdrawals
	payoutsHandler := payoutsfeature.NewHandler(deps.Store, logger)
	r.Mount("/payouts", payoutsfeature.Routes(payoutsHandler, tokens))

	// App marketplace
	appsHandler := appsfeature.NewHandler(deps.Store, logger)
	r.Mount("/apps", appsfeature.Routes(appsHandler, tokens))

	return r, nil
}

// splitOrigins turns the comma-separated origin config into the slice the
// CORS middleware wants, dropping blanks.
func splitOrigins(s string) []string {
	var out []string
	for _, origin := range strings.Split(s, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
