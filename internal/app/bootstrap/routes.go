// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	admincontactsfeature "github.com/bnomad/website/internal/app/features/admincontacts"
	adminpostsfeature "github.com/bnomad/website/internal/app/features/adminposts"
	authgooglefeature "github.com/bnomad/website/internal/app/features/authgoogle"
	blogfeature "github.com/bnomad/website/internal/app/features/blog"
	contactfeature "github.com/bnomad/website/internal/app/features/contact"
	dashboardfeature "github.com/bnomad/website/internal/app/features/dashboard"
	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	healthfeature "github.com/bnomad/website/internal/app/features/health"
	homefeature "github.com/bnomad/website/internal/app/features/home"
	loginfeature "github.com/bnomad/website/internal/app/features/login"
	mediafeature "github.com/bnomad/website/internal/app/features/media"
	pagesfeature "github.com/bnomad/website/internal/app/features/pages"
	settingsfeature "github.com/bnomad/website/internal/app/features/settings"
	appresources "github.com/bnomad/website/internal/app/resources"
	userstore "github.com/bnomad/website/internal/app/store/users"
	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Route layout:
//   - /health, /assets, /uploads, /auth/google live outside the locale
//     prefix (fixed URLs for probes, files, and the OAuth redirect).
//   - Everything else is served under /{locale} (en or ko); requests
//     without a prefix are redirected by i18n.RedirectMiddleware.
//   - /{locale}/admin is gated by RequireAdmin.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so
	// disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errPages := errorsfeature.NewHandler()

	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection. The cookie name is project-specific to avoid
	// collisions with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("bnomad_csrf"),
		csrf.FieldName("gorilla.csrf.Token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// Locale redirect: bare paths get a locale prefix based on
	// Accept-Language; prefixed paths get the locale into context.
	r.Use(i18n.RedirectMiddleware)

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded media files (local storage only; S3 serves its own URLs)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Google OAuth lives outside the locale prefix because the
	// redirect URL registered with Google is fixed.
	if googleEnabled {
		googleHandler := authgooglefeature.NewHandler(
			deps.MongoDatabase,
			sessionMgr,
			authgooglefeature.Config{
				ClientID:     appCfg.GoogleClientID,
				ClientSecret: appCfg.GoogleClientSecret,
				RedirectURL:  appCfg.BaseURL + "/auth/google/callback",
			},
			errLog,
			logger,
		)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
		logger.Info("Google OAuth enabled", zap.String("redirect_url", appCfg.BaseURL+"/auth/google/callback"))
	}

	// Feature handlers
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	pagesHandler := pagesfeature.NewHandler(logger)
	blogHandler := blogfeature.NewHandler(deps.MongoDatabase, errPages, errLog, logger)
	contactHandler := contactfeature.NewHandler(deps.MongoDatabase, deps.Mailer, appCfg.ContactNotifyEmail, appCfg.SiteName, errLog, logger)
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, googleEnabled, errLog, logger)
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	adminPostsHandler := adminpostsfeature.NewHandler(deps.MongoDatabase, errPages, errLog, logger)
	adminContactsHandler := admincontactsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	mediaHandler := mediafeature.NewHandler(deps.FileStorage, errLog, logger)
	settingsHandler := settingsfeature.NewHandler(settingsfeature.Info{
		SiteName:      appCfg.SiteName,
		BaseURL:       appCfg.BaseURL,
		Environment:   appCfg.Environment,
		StorageType:   appCfg.StorageType,
		MailEnabled:   deps.Mailer != nil,
		GoogleEnabled: googleEnabled,
	}, logger)

	// Localized site: every public and admin page lives under /{locale}.
	r.Route("/{locale}", func(lr chi.Router) {
		lr.Get("/", homeHandler.Index)
		lr.Get("/about", pagesHandler.About)
		lr.Get("/programs", pagesHandler.Programs)
		lr.Get("/programs/{slug}", pagesHandler.ProgramDetail)
		lr.Get("/projects", pagesHandler.Projects)
		lr.Get("/team", pagesHandler.Team)
		lr.Mount("/blog", blogfeature.Routes(blogHandler))
		lr.Mount("/contact", contactfeature.Routes(contactHandler))

		// Login is reachable without an admin session.
		lr.Mount("/admin/login", loginOnly(loginHandler))
		lr.Route("/admin", func(ar chi.Router) {
			ar.Post("/logout", loginHandler.Logout)
			ar.Group(func(pr chi.Router) {
				pr.Use(sessionMgr.RequireAdmin)
				pr.Mount("/", dashboardfeature.Routes(dashboardHandler))
				pr.Mount("/posts", adminpostsfeature.Routes(adminPostsHandler))
				pr.Mount("/contacts", admincontactsfeature.Routes(adminContactsHandler))
				pr.Mount("/media", mediafeature.Routes(mediaHandler))
				pr.Mount("/settings", settingsfeature.Routes(settingsHandler))
			})
		})
	})

	// 404 catch-all for unmatched routes
	r.NotFound(errPages.NotFound)

	return r, nil
}

// loginOnly exposes just the login form routes of the login feature so
// they can be mounted outside the RequireAdmin group.
func loginOnly(h *loginfeature.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Form)
	r.Post("/", h.Submit)
	return r
}
