package weekplan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fdg312/menu-board/internal/userctx"
)

// Handler handles HTTP requests for weekly plans and the board.
type Handler struct {
	service *Service
}

// NewHandler creates a new weekly plan handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetPlan handles GET /v1/plans?person_id=&week_start=YYYY-MM-DD
func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	personID, weekStart, ok := planQuery(w, r)
	if !ok {
		return
	}

	plan, err := h.service.GetPlan(r.Context(), personID, weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get weekly plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandlePutPlan handles PUT /v1/plans
func (h *Handler) HandlePutPlan(w http.ResponseWriter, r *http.Request) {
	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	plan.Person = userctx.PersonOr(r.Context(), plan.Person)

	saved, err := h.service.PutPlan(r.Context(), plan)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// HandleGetBoard handles GET /v1/board?person_id=&week_start=
func (h *Handler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	personID, weekStart, ok := planQuery(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Board(r.Context(), personID, weekStart, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load board")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRefreshBoard handles POST /v1/board. The body carries the caller's
// current menus so unsaved drafts survive the refresh.
func (h *Handler) HandleRefreshBoard(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	personID := userctx.PersonOr(r.Context(), req.Person)
	if personID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person is required")
		return
	}
	weekStart, err := ParseWeekStart(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := h.service.Board(r.Context(), personID, weekStart, normalizeMenus(req.Menus))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load board")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMove handles POST /v1/board/move
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	resp, err := h.service.Move(normalizeMenus(req.Menus), req.Drag)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSave handles POST /v1/board/save
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	personID := userctx.PersonOr(r.Context(), req.Person)
	weekStart, err := ParseWeekStart(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plan, err := h.service.Save(r.Context(), personID, weekStart, normalizeMenus(req.Menus))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, "slot_conflict", conflict.Error())
	case errors.Is(err, ErrMomentUnresolved):
		writeError(w, http.StatusUnprocessableEntity, "moment_unresolved", err.Error())
	case errors.Is(err, ErrMenuNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save weekly plan")
	}
}

// planQuery reads person_id and week_start from the query string and writes
// a 400 when either is unusable.
func planQuery(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	personID := userctx.PersonOr(r.Context(), r.URL.Query().Get("person_id"))
	if personID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return "", time.Time{}, false
	}

	weekStart, err := ParseWeekStart(r.URL.Query().Get("week_start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return "", time.Time{}, false
	}

	return personID, weekStart, true
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
