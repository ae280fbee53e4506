package auth

import (
	"net/http"
	"strings"

	"github.com/fdg312/menu-board/internal/config"
	"github.com/fdg312/menu-board/internal/userctx"
)

// Middleware: middleware для проверки авторизации
type Middleware struct {
	config  *config.Config
	service *Service
}

func NewMiddleware(cfg *config.Config, service *Service) *Middleware {
	return &Middleware{
		config:  cfg,
		service: service,
	}
}

// RequireAuth rejects requests without a valid Bearer token when
// AUTH_REQUIRED is on. Otherwise it behaves like OptionalAuth.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	optional := m.OptionalAuth(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.AuthRequired || isPublicPath(r.URL.Path) {
			optional.ServeHTTP(w, r)
			return
		}

		userID, err := m.authenticateHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.WithUserID(r.Context(), userID)))
	})
}

// OptionalAuth validates a Bearer token only when one is provided.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if isPublicPath(r.URL.Path) || strings.TrimSpace(authHeader) == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.authenticateHeader(authHeader)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.WithUserID(r.Context(), userID)))
	})
}

func (m *Middleware) authenticateHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}
	return m.service.VerifyJWT(strings.TrimSpace(token))
}

func isPublicPath(path string) bool {
	return path == "/healthz" || strings.HasPrefix(path, "/v1/auth/")
}
