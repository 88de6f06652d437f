// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	alertsfeature "github.com/gourmetta/haccphub/internal/app/features/alerts"
	assignmentsfeature "github.com/gourmetta/haccphub/internal/app/features/assignments"
	auditlogfeature "github.com/gourmetta/haccphub/internal/app/features/auditlog"
	facilitiesfeature "github.com/gourmetta/haccphub/internal/app/features/facilities"
	formresponsesfeature "github.com/gourmetta/haccphub/internal/app/features/formresponses"
	formsfeature "github.com/gourmetta/haccphub/internal/app/features/forms"
	healthfeature "github.com/gourmetta/haccphub/internal/app/features/health"
	menusfeature "github.com/gourmetta/haccphub/internal/app/features/menus"
	readingsfeature "github.com/gourmetta/haccphub/internal/app/features/readings"
	refrigeratorsfeature "github.com/gourmetta/haccphub/internal/app/features/refrigerators"
	settingsfeature "github.com/gourmetta/haccphub/internal/app/features/settings"
	usersfeature "github.com/gourmetta/haccphub/internal/app/features/users"
	worklistfeature "github.com/gourmetta/haccphub/internal/app/features/worklist"
	auditstore "github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The router mounts the health
// endpoint plus the JSON API: the staff-facing worklist and submission
// endpoints and the administrator CRUD surfaces.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	auditLog := auditlog.New(auditstore.New(db), logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		// Staff-facing: what is due today, and recording results
		worklistHandler := worklistfeature.NewHandler(db, appCfg.Location, logger)
		r.Mount("/worklist", worklistfeature.Routes(worklistHandler))

		readingsHandler := readingsfeature.NewHandler(db, logger)
		r.Mount("/readings", readingsfeature.Routes(readingsHandler))

		formResponsesHandler := formresponsesfeature.NewHandler(db, logger)
		r.Mount("/form-responses", formresponsesfeature.Routes(formResponsesHandler))

		// Alert review
		alertsHandler := alertsfeature.NewHandler(db, auditLog, logger)
		r.Mount("/alerts", alertsfeature.Routes(alertsHandler))

		// Administration
		assignmentsHandler := assignmentsfeature.NewHandler(db, auditLog, logger)
		r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

		usersHandler := usersfeature.NewHandler(db, auditLog, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler))

		facilitiesHandler := facilitiesfeature.NewHandler(db, auditLog, logger)
		r.Mount("/facilities", facilitiesfeature.Routes(facilitiesHandler))

		refrigeratorsHandler := refrigeratorsfeature.NewHandler(db, auditLog, logger)
		r.Mount("/refrigerators", refrigeratorsfeature.Routes(refrigeratorsHandler))

		menusHandler := menusfeature.NewHandler(db, auditLog, logger)
		r.Mount("/menus", menusfeature.Routes(menusHandler))

		formsHandler := formsfeature.NewHandler(db, auditLog, logger)
		r.Mount("/forms", formsfeature.Routes(formsHandler))

		settingsHandler := settingsfeature.NewHandler(db, auditLog, logger)
		r.Mount("/settings", settingsfeature.Routes(settingsHandler))

		auditHandler := auditlogfeature.NewHandler(db, logger)
		r.Mount("/audit-logs", auditlogfeature.Routes(auditHandler))
	})

	return r, nil
}
