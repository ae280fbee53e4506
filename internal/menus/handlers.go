package menus

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fdg312/menu-board/internal/userctx"
)

// Handler handles HTTP requests for menus.
type Handler struct {
	service *Service
}

// NewHandler creates a new menus handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/menus?person_id=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	personID := personFromRequest(r)
	if personID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	list, err := h.service.List(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list menus")
		return
	}

	writeJSON(w, http.StatusOK, ListMenusResponse{Menus: list})
}

// HandleListUnassigned handles GET /v1/menus/unassigned?person_id=
func (h *Handler) HandleListUnassigned(w http.ResponseWriter, r *http.Request) {
	personID := personFromRequest(r)
	if personID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	list, err := h.service.ListUnassigned(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list unassigned menus")
		return
	}

	writeJSON(w, http.StatusOK, ListMenusResponse{Menus: list})
}

// HandleCreate handles POST /v1/menus
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	menu, ok := decodeMenu(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), menu)
	if err != nil {
		h.writeServiceError(w, err, menu.ID)
		return
	}

	writeJSON(w, http.StatusCreated, MenuResponse{Menu: created, Totals: MenuTotals(created)})
}

// HandleUpdate handles PUT /v1/menus/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	menu, ok := decodeMenu(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, menu)
	if err != nil {
		h.writeServiceError(w, err, id)
		return
	}

	writeJSON(w, http.StatusOK, MenuResponse{Menu: updated, Totals: MenuTotals(updated)})
}

// HandleDelete handles DELETE /v1/menus?id=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, id)
		return
	}

	writeJSON(w, http.StatusOK, MenuResponse{Menu: deleted, Totals: MenuTotals(deleted)})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("Menu with id %s not found", id))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save menu")
	}
}

func decodeMenu(w http.ResponseWriter, r *http.Request) (Menu, bool) {
	var raw RawMenu
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return Menu{}, false
	}

	menu := NormalizeMenu(raw)
	menu.PersonID = userctx.PersonOr(r.Context(), menu.PersonID)
	return menu, true
}

// personFromRequest reads person_id and falls back to the authenticated user.
func personFromRequest(r *http.Request) string {
	return userctx.PersonOr(r.Context(), r.URL.Query().Get("person_id"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
