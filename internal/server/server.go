// Package server wires handlers, middleware and routes, and runs the HTTP
// server.
//
// It is the composition root: New receives the config, an opened store
// and a logger, and builds every service and handler from them.
//
//	store (repository.Store) → services → handlers → routes
//
// Handlers never touch the store directly; services never touch HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/talk-catalog/internal/auth"
	"github.com/sakif/talk-catalog/internal/config"
	"github.com/sakif/talk-catalog/internal/handler"
	"github.com/sakif/talk-catalog/internal/middleware"
	"github.com/sakif/talk-catalog/internal/repository"
	"github.com/sakif/talk-catalog/internal/service"
	"github.com/sakif/talk-catalog/web"
)

const shutdownTimeout = 30 * time.Second

// Server holds the router and everything it depends on.
//
// RESOURCE MANAGEMENT:
// The server owns the store once New succeeds. Start closes it after the
// HTTP server has drained, so in-flight requests never see a closed store.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store
	talks  *service.TalkService
}

// New builds the services, handlers and routes on top of store.
func New(cfg *config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	passwords, err := auth.NewPasswordService(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return newServer(cfg, store, passwords, logger)
}

// newServer takes the password service separately so tests can use the
// cheapest bcrypt cost.
func newServer(cfg *config.Config, store repository.Store, passwords *auth.PasswordService, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		talks:  service.NewTalkService(store, logger),
	}

	accounts := service.NewAuthService(store, passwords, auth.NewTokenGenerator(), logger)
	if err := s.setupRoutes(accounts); err != nil {
		return nil, fmt.Errorf("server: setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /              → route listing (JSON)
//	POST /register      → create account, returns token
//	POST /login         → returns the account's token
//	GET  /top10Views    → ten most viewed talks       [token]
//	GET  /speaker/{id}  → one talk                    [token]
//	GET  /app/*         → browser UI (HTML)
//	GET  /static/*      → UI assets
//
// MIDDLEWARE ORDER:
// RequestID first so the logger can report it, Recoverer inside the logger
// so a recovered panic is logged as a 500. CORS runs on every route so
// preflight requests are answered even though only GET/POST are routed.
// The store guard and the token check apply to the API routes only.
func (s *Server) setupRoutes(accounts *service.AuthService) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// === Browser UI ===
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	ui, err := handler.NewUIHandler(web.FS, s.logger)
	if err != nil {
		return err
	}
	s.router.Mount("/app", ui.Routes())

	// === API ===
	authHandler := handler.NewAuthHandler(accounts, s.logger)
	talkHandler := handler.NewTalkHandler(s.talks, s.logger)
	routesHandler := handler.NewRoutesHandler(s.router, s.logger, "/app", "/static")

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RequireStore(s.store, s.logger))

		r.Get("/", routesHandler.HandleList)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(accounts, s.logger))

			r.Get("/top10Views", talkHandler.HandleTop10)
			r.Get("/speaker/{id}", talkHandler.HandleGetByID)
		})
	})

	return nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ResetCatalog replaces the talk catalog with the embedded dataset.
func (s *Server) ResetCatalog(ctx context.Context) error {
	return ResetCatalog(ctx, s.talks)
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the store
func (s *Server) Start() error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.Bool("postgres", s.config.IsPostgres()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
