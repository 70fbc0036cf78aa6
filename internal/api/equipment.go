package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/service"
)

// EquipmentHandler handles equipment endpoints.
type EquipmentHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// List handles GET /api/equipment.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.Service.ListEquipment(r.Context(), service.EquipmentQuery{
		Category: model.EquipmentCategory(q.Get("category")),
		Status:   model.EquipmentStatus(q.Get("status")),
	})
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, items)
}

// Create handles POST /api/equipment.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.EquipmentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	e, err := h.Service.CreateEquipment(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusCreated, e)
}

// Get handles GET /api/equipment/{id}.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, e)
}

// Update handles PUT /api/equipment/{id}.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.EquipmentUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	e, err := h.Service.UpdateEquipment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, e)
}
