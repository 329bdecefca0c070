// Package server assembles the HTTP surface: health checks, the /api routes
// and the middleware chain.
package server

import (
	"net/http"

	"github.com/azuldeco/azul-admin/httpx"
	"github.com/azuldeco/azul-admin/internal/handlers"
	"github.com/azuldeco/azul-admin/internal/services"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services are the dependencies the routes need.
type Services struct {
	Documents    *services.DocumentService
	Clients      *services.ClientService
	Fabrics      *services.FabricService
	SystemColors *services.SystemColorService
	Settings     *settings.Service
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, svc Services, l *log.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.WithContext(req.Context()).Exec("SELECT 1").Error; err != nil {
			l.WithError(err).Warn("health check failed")
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	handlers.NewDocumentHandler(svc.Documents, l).Register(api)
	handlers.NewClientHandler(svc.Clients, l).Register(api)
	handlers.NewFabricHandler(svc.Fabrics, l).Register(api)
	handlers.NewSystemColorHandler(svc.SystemColors, l).Register(api)
	handlers.NewSettingsHandler(svc.Settings, l).Register(api)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})

	return withRequestID(withLogging(l, withRecover(l, r)))
}
