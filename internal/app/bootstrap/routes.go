// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/coursepulse/internal/app/features/admin"
	authfeature "github.com/dalemusser/coursepulse/internal/app/features/authapi"
	coursesfeature "github.com/dalemusser/coursepulse/internal/app/features/courses"
	healthfeature "github.com/dalemusser/coursepulse/internal/app/features/health"
	studygroupsfeature "github.com/dalemusser/coursepulse/internal/app/features/studygroups"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// CoursePulse is a JSON API. The bearer middleware loads the caller's
// identity from the Authorization header; each feature decides which of
// its routes require a signed-in caller.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Global auth middleware: loads the identity into context when a valid
	// bearer token is present. Handlers read it via auth.CurrentUser(r).
	r.Use(auth.LoadBearerUser(tokenService))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration and login (public)
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokenService, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Course management, membership, documents, and questions
	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, documents, logger)
	r.Mount("/courses", coursesfeature.Routes(coursesHandler))

	// Study groups
	sgHandler := studygroupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/study-groups", studygroupsfeature.Routes(sgHandler))

	// Manual digest triggers
	adminHandler := adminfeature.NewHandler(digestProcessor, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
