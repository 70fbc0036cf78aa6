package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/service"
)

// GovernmentsHandler handles government endpoints.
type GovernmentsHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// List handles GET /api/governments.
func (h *GovernmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	governments, err := h.Service.ListGovernments(r.Context())
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, governments)
}

// Create handles POST /api/governments.
func (h *GovernmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.GovernmentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	g, err := h.Service.CreateGovernment(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusCreated, g)
}

// Get handles GET /api/governments/{id}.
func (h *GovernmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.Service.GetGovernment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, g)
}

// Update handles PUT /api/governments/{id}.
func (h *GovernmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.GovernmentUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	g, err := h.Service.UpdateGovernment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, g)
}

// Delete handles DELETE /api/governments/{id}.
func (h *GovernmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteGovernment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, map[string]bool{"success": true})
}
