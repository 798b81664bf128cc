// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	apidocsfeature "github.com/huynhland/cms/internal/app/features/apidocs"
	contactmsgfeature "github.com/huynhland/cms/internal/app/features/contactmsg"
	healthfeature "github.com/huynhland/cms/internal/app/features/health"
	localedocfeature "github.com/huynhland/cms/internal/app/features/localedoc"
	newsfeature "github.com/huynhland/cms/internal/app/features/news"
	propertyfeature "github.com/huynhland/cms/internal/app/features/property"
	propertytypefeature "github.com/huynhland/cms/internal/app/features/propertytype"
	singletonfeature "github.com/huynhland/cms/internal/app/features/singleton"
	uploadsfeature "github.com/huynhland/cms/internal/app/features/uploads"
	usersfeature "github.com/huynhland/cms/internal/app/features/users"
	"github.com/huynhland/cms/internal/app/system/apicors"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The whole surface is a JSON API consumed
// by the public website and the admin panel; both are separate frontends, so
// every /api mount gets the permissive API CORS in addition to the core CORS
// middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	adminKey := appCfg.AdminAPIKey

	if adminKey == "" {
		logger.Warn("admin_api_key is empty, mutating routes are unauthenticated")
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// ─────────────────────────────────────────────────────────────────────────────
	// Root banner and probes
	// ─────────────────────────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		jsonutil.OK(w, map[string]string{
			"vi": "API Huynh Land đang hoạt động",
			"en": "Huynh Land API is running",
			"ko": "Huynh Land API가 실행 중입니다",
		})
	})

	healthfeature.Mount(r, healthfeature.NewHandler(deps.MongoClient, logger))

	// ─────────────────────────────────────────────────────────────────────────────
	// JSON API
	// ─────────────────────────────────────────────────────────────────────────────

	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware())

		api.Mount("/property", propertyfeature.Routes(
			propertyfeature.NewHandler(db, logger), adminKey, logger))
		api.Mount("/property-type", propertytypefeature.Routes(
			propertytypefeature.NewHandler(db, logger), adminKey, logger))

		// Per-language site content
		api.Mount("/history", localedocfeature.Routes(
			localedocfeature.NewHandler(db, localedocfeature.History, logger), adminKey, logger))
		api.Mount("/mission", localedocfeature.Routes(
			localedocfeature.NewHandler(db, localedocfeature.Mission, logger), adminKey, logger))
		api.Mount("/vision", localedocfeature.Routes(
			localedocfeature.NewHandler(db, localedocfeature.Vision, logger), adminKey, logger))
		api.Mount("/infor", localedocfeature.Routes(
			localedocfeature.NewHandler(db, localedocfeature.Infor, logger), adminKey, logger))
		api.Mount("/office", localedocfeature.Routes(
			localedocfeature.NewHandler(db, localedocfeature.Office, logger), adminKey, logger))

		// Site-wide singletons
		api.Mount("/settings", singletonfeature.Routes(
			singletonfeature.NewHandler(db, singletonfeature.Settings, logger), adminKey, logger))
		api.Mount("/social", singletonfeature.Routes(
			singletonfeature.NewHandler(db, singletonfeature.Social, logger), adminKey, logger))
		api.Mount("/contact", singletonfeature.Routes(
			singletonfeature.NewHandler(db, singletonfeature.Contact, logger), adminKey, logger))
		api.Mount("/mainoffice-map", singletonfeature.Routes(
			singletonfeature.NewHandler(db, singletonfeature.MainOfficeMap, logger), adminKey, logger))

		api.Mount("/news", newsfeature.Routes(
			newsfeature.NewHandler(db, logger), adminKey, logger))
		api.Mount("/contact-message", contactmsgfeature.Routes(
			contactmsgfeature.NewHandler(db, logger), adminKey, logger))
		api.Mount("/users", usersfeature.Routes(
			usersfeature.NewHandler(db, logger), adminKey, logger))
		api.Mount("/uploads", uploadsfeature.Routes(
			uploadsfeature.NewHandler(deps.FileStorage, logger), adminKey, logger))
	})

	r.Mount("/api-docs", apidocsfeature.Routes())

	// ─────────────────────────────────────────────────────────────────────────────
	// Static file serving for local storage
	// ─────────────────────────────────────────────────────────────────────────────

	// Serve uploaded files from local storage. S3 deployments serve files
	// through CloudFront instead, so no route is needed there.
	if appCfg.StorageType != "s3" && appCfg.StorageLocalURL != "" {
		logger.Info("serving local files",
			zap.String("url", appCfg.StorageLocalURL),
			zap.String("path", appCfg.StorageLocalPath))
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
