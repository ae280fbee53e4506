package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fdg312/menu-board/internal/userctx"
	"github.com/fdg312/menu-board/internal/weekplan"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type URLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// HandleExport handles GET /v1/plans/export?person_id=&week_start=
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	personID := userctx.PersonOr(r.Context(), r.URL.Query().Get("person_id"))
	if personID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	weekStart, err := weekplan.ParseWeekStart(r.URL.Query().Get("week_start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.service.Export(r.Context(), personID, weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to export weekly plan")
		return
	}

	if result.URL != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(URLResponse{URL: result.URL, ExpiresIn: result.ExpiresIn})
		return
	}

	filename := fmt.Sprintf("menu-plan-%s.pdf", weekplan.FormatWeekStart(weekStart))
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
