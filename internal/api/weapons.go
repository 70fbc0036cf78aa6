package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/service"
)

// WeaponTypesHandler handles catalog endpoints.
type WeaponTypesHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// List handles GET /api/weapon-types.
func (h *WeaponTypesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	types, err := h.Service.ListWeaponTypes(r.Context(), service.WeaponTypeQuery{
		Category: model.WeaponCategory(q.Get("category")),
		Brand:    q.Get("brand"),
	})
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, types)
}

// Create handles POST /api/weapon-types.
func (h *WeaponTypesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.WeaponTypeInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	wt, err := h.Service.CreateWeaponType(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusCreated, wt)
}

// WeaponsHandler handles weapon endpoints.
type WeaponsHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// List handles GET /api/weapons.
func (h *WeaponsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weapons, err := h.Service.ListWeapons(r.Context(), service.WeaponQuery{
		Status:   model.WeaponStatus(q.Get("status")),
		OwnerID:  q.Get("owner_id"),
		Category: model.WeaponCategory(q.Get("category")),
		Query:    q.Get("q"),
	})
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, weapons)
}

// Create handles POST /api/weapons.
func (h *WeaponsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.WeaponInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	weapon, err := h.Service.CreateWeapon(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusCreated, weapon)
}

// Get handles GET /api/weapons/{id}.
func (h *WeaponsHandler) Get(w http.ResponseWriter, r *http.Request) {
	weapon, err := h.Service.GetWeapon(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, weapon)
}
