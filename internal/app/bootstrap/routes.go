// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	authgooglefeature "github.com/dalemusser/stratadesk/internal/app/features/authgoogle"
	clientsfeature "github.com/dalemusser/stratadesk/internal/app/features/clients"
	dealersfeature "github.com/dalemusser/stratadesk/internal/app/features/dealers"
	errorsfeature "github.com/dalemusser/stratadesk/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratadesk/internal/app/features/health"
	platformsfeature "github.com/dalemusser/stratadesk/internal/app/features/platforms"
	clientstore "github.com/dalemusser/stratadesk/internal/app/store/clients"
	dealerstore "github.com/dalemusser/stratadesk/internal/app/store/dealers"
	platformstore "github.com/dalemusser/stratadesk/internal/app/store/platforms"
	"github.com/dalemusser/stratadesk/internal/app/system/apicors"
	"github.com/dalemusser/stratadesk/internal/app/system/auth"
	"github.com/dalemusser/stratadesk/internal/app/system/callbackurl"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection and schema setup.
// Edge middleware comes from WAFFLE's core config; the application routes
// are mounted by mountRoutes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	production := coreCfg.Env == "prod"

	// Secure cookies are enabled in production mode.
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, production, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Request timeout for every route.
	r.Use(chimw.Timeout(30 * time.Second))
	// CORS for browser sessions, from core config.
	r.Use(middleware.CORSFromConfig(coreCfg))
	// Security headers (X-Content-Type-Options, X-Frame-Options, ...).
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	mountRoutes(r, appCfg, production, deps.Mongo, sessionMgr, logger)
	return r, nil
}

// mountRoutes attaches every application route to r. All stores share
// provider, so the first request to need MongoDB connects it.
func mountRoutes(r chi.Router, appCfg AppConfig, production bool, provider mongoconn.Provider, sessionMgr *auth.SessionManager, logger *zap.Logger) {
	// Load the signed-in Google profile, if any.
	r.Use(sessionMgr.LoadSessionUser)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	// Health probes
	healthHandler := healthfeature.NewHandler(provider, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Google sign-in, only when credentials are configured.
	if appCfg.GoogleEnabled() {
		googleHandler := authgooglefeature.NewHandler(authgooglefeature.Config{
			ClientID:     appCfg.GoogleClientID,
			ClientSecret: appCfg.GoogleClientSecret,
			Resolver: callbackurl.Resolver{
				Production:   production,
				CanonicalURL: appCfg.CanonicalURL,
				CallbackPath: appCfg.CallbackPath,
			},
		}, sessionMgr, errLog, logger)
		r.Mount("/auth", authgooglefeature.Routes(googleHandler))
	} else {
		logger.Info("google sign-in disabled; google_client_id/google_client_secret not set")
	}

	// Read-only list API: permissive CORS, optional Bearer key.
	clients := clientstore.New(provider, logger)
	dealers := dealerstore.New(provider, logger)
	platforms := platformstore.New(provider, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware(appCfg.APIAllowedOrigins...))
		if appCfg.APIKey != "" {
			api.Use(auth.APIKeyAuth(appCfg.APIKey, logger))
		} else {
			logger.Warn("api_key not set; /api is open")
		}

		api.Mount("/clients", clientsfeature.Routes(clientsfeature.NewHandler(clients, logger)))
		api.Mount("/dealers", dealersfeature.Routes(dealersfeature.NewHandler(dealers, logger)))
		api.Mount("/platforms", platformsfeature.Routes(platformsfeature.NewHandler(platforms, errLog)))
	})

	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)
}
