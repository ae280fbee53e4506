package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fdg312/menu-board/internal/config"
	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/userctx"
)

const maxRequestBody = 1 << 20

// personClaim is the top-level person named by a request body.
type personClaim struct {
	Person   menus.Text `json:"person"`
	PersonID menus.Text `json:"personId"`
}

// PersonGuard rejects requests that name another person than the token
// subject. Only active with AUTH_REQUIRED=1.
// 404 вместо 403, чтобы не раскрывать чужие данные.
func PersonGuard(cfg *config.Config, next http.Handler) http.Handler {
	if !cfg.AuthRequired {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userctx.GetUserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		named, err := requestedPersons(w, r)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large")
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
			return
		}
		for _, p := range named {
			if p != userID {
				writeJSONError(w, http.StatusNotFound, "person_not_found", "Person not found")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// requestedPersons collects person ids from the query and a JSON body.
// The body is restored for the next handler; bodies over maxRequestBody
// fail with *http.MaxBytesError.
func requestedPersons(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var named []string
	if p := strings.TrimSpace(r.URL.Query().Get("person_id")); p != "" {
		named = append(named, p)
	}

	if r.Body == nil || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
		return named, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(data))

	if len(bytes.TrimSpace(data)) == 0 {
		return named, nil
	}

	var claim personClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		// битый JSON разберёт сам handler
		return named, nil
	}
	for _, p := range []menus.Text{claim.Person, claim.PersonID} {
		if s := strings.TrimSpace(string(p)); s != "" {
			named = append(named, s)
		}
	}
	return named, nil
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
