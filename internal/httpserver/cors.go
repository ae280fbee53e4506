package httpserver

import (
	"net/http"
	"strings"

	"github.com/fdg312/menu-board/internal/config"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Authorization,Content-Type"
)

// CORSMiddleware adds CORS headers for the configured board frontends.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.CORSAllowedOrigins))
	for _, o := range cfg.CORSAllowedOrigins {
		allowed[strings.TrimSpace(o)] = true
	}
	allowAny := allowed["*"]

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		ok := origin != "" && (allowAny || allowed[origin])

		if ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cfg.CORSAllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions && origin != "" {
			// без CORS заголовков браузер сам заблокирует запрос
			if ok {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
