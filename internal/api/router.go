// Package api exposes the registry over JSON/HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/metrics"
	"github.com/erazemk/arsenal/internal/service"
)

// NewRouter creates the HTTP router with all endpoints registered.
func NewRouter(svc *service.Service, m *metrics.Metrics, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware(log), LoggingMiddleware(log), m.Middleware)

	governments := &GovernmentsHandler{Service: svc, Log: log}
	weaponTypes := &WeaponTypesHandler{Service: svc, Log: log}
	weapons := &WeaponsHandler{Service: svc, Log: log}
	equipment := &EquipmentHandler{Service: svc, Log: log}
	transactions := &TransactionsHandler{Service: svc, Log: log}
	stats := &StatsHandler{Service: svc, Log: log}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/governments", governments.List).Methods(http.MethodGet)
	api.HandleFunc("/governments", governments.Create).Methods(http.MethodPost)
	api.HandleFunc("/governments/{id}", governments.Get).Methods(http.MethodGet)
	api.HandleFunc("/governments/{id}", governments.Update).Methods(http.MethodPut)
	api.HandleFunc("/governments/{id}", governments.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/weapon-types", weaponTypes.List).Methods(http.MethodGet)
	api.HandleFunc("/weapon-types", weaponTypes.Create).Methods(http.MethodPost)

	api.HandleFunc("/weapons", weapons.List).Methods(http.MethodGet)
	api.HandleFunc("/weapons", weapons.Create).Methods(http.MethodPost)
	api.HandleFunc("/weapons/{id}", weapons.Get).Methods(http.MethodGet)

	api.HandleFunc("/equipment", equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment", equipment.Create).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}", equipment.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", equipment.Update).Methods(http.MethodPut)

	api.HandleFunc("/transactions", transactions.List).Methods(http.MethodGet)
	api.HandleFunc("/transactions", transactions.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions/export", transactions.Export).Methods(http.MethodGet)

	api.HandleFunc("/stats", stats.Get).Methods(http.MethodGet)

	r.HandleFunc("/healthz", health(svc, log)).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(w, log, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(w, log, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// health reports 200 when the store answers a ping and 503 otherwise.
func health(svc *service.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			jsonResponse(w, log, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		jsonResponse(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}
}
