package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/menu-board/internal/auth"
	"github.com/fdg312/menu-board/internal/blob"
	"github.com/fdg312/menu-board/internal/config"
	"github.com/fdg312/menu-board/internal/export"
	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/moments"
	"github.com/fdg312/menu-board/internal/storage"
	"github.com/fdg312/menu-board/internal/storage/memory"
	"github.com/fdg312/menu-board/internal/storage/postgres"
	"github.com/fdg312/menu-board/internal/weekplan"
)

const shutdownTimeout = 10 * time.Second

// appStorage is implemented by both memory.MemoryStorage and postgres.PostgresStorage.
type appStorage interface {
	storage.Storage
	GetMenusStorage() storage.MenusStorage
	GetWeeklyPlansStorage() storage.WeeklyPlansStorage
	GetMealMomentsStorage() storage.MealMomentsStorage
}

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        appStorage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: connecting to PostgreSQL...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
	if err != nil {
		log.Printf("WARN storage: postgres unavailable (%v), fallback=memory", err)
		s.storage = memory.New()
		return
	}
	log.Println("INFO storage: PostgreSQL connected")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Auth (public)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Meal moments
	momentsHandler := moments.NewHandler(moments.NewService(s.storage.GetMealMomentsStorage()))
	s.mux.HandleFunc("GET /v1/meal-moments", momentsHandler.HandleList)

	// Menus
	menusService := menus.NewService(s.storage.GetMenusStorage(), s.storage.GetWeeklyPlansStorage(), log.Default())
	menusHandler := menus.NewHandler(menusService)
	s.mux.HandleFunc("GET /v1/menus", menusHandler.HandleList)
	s.mux.HandleFunc("POST /v1/menus", menusHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/menus/unassigned", menusHandler.HandleListUnassigned)
	s.mux.HandleFunc("PUT /v1/menus/{id}", menusHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/menus", menusHandler.HandleDelete)

	// Weekly plans + board
	planService := weekplan.NewService(s.storage.GetWeeklyPlansStorage(), menusService, s.config.PlanDays, log.Default())
	planHandler := weekplan.NewHandler(planService)
	s.mux.HandleFunc("GET /v1/plans", planHandler.HandleGetPlan)
	s.mux.HandleFunc("PUT /v1/plans", planHandler.HandlePutPlan)
	s.mux.HandleFunc("GET /v1/board", planHandler.HandleGetBoard)
	s.mux.HandleFunc("POST /v1/board", planHandler.HandleRefreshBoard)
	s.mux.HandleFunc("POST /v1/board/move", planHandler.HandleMove)
	s.mux.HandleFunc("POST /v1/board/save", planHandler.HandleSave)

	// PDF export
	blobStore, mode, err := blob.NewBlobStore(context.Background(), s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: %v", err)
	}
	log.Printf("INFO export: delivery=%s", mode)
	exportHandler := export.NewHandler(export.NewService(planService, blobStore, s.config.Blob.S3.PresignTTLSeconds))
	s.mux.HandleFunc("GET /v1/plans/export", exportHandler.HandleExport)
}

// Handler builds the middleware chain (outermost first):
// CORS → Rate Limit → Auth → Person guard → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.config.AuthMode != config.AuthModeNone {
		handler = PersonGuard(s.config, handler)
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	return CORSMiddleware(s.config, handler)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := s.storage.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("WARN server: shutdown: %v", err)
		}
	}()

	log.Printf("Сервер запущен на http://localhost%s", srv.Addr)
	log.Printf("Board API: http://localhost%s/v1/board", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
