package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kayfabe/promoter/internal/auth"
	"github.com/kayfabe/promoter/internal/engine"
	"github.com/kayfabe/promoter/internal/handler"
	"github.com/kayfabe/promoter/internal/infra"
	"github.com/kayfabe/promoter/internal/lineage"
	"github.com/kayfabe/promoter/internal/policy"
	"github.com/kayfabe/promoter/internal/repository"
	"github.com/kayfabe/promoter/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	promoterExpiry, err := time.ParseDuration(cfg.JWTPromoterExpiry)
	if err != nil {
		return fmt.Errorf("parse promoter JWT expiry: %w", err)
	}
	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, promoterExpiry, adminExpiry)

	// Repositories
	rosterRepo := repository.NewRosterRepository()
	companyRepo := repository.NewCompanyRepository()
	venueRepo := repository.NewVenueRepository()
	showRepo := repository.NewShowRepository()
	titleRepo := repository.NewChampionshipRepository()
	outboxRepo := repository.NewOutboxRepository()
	accountRepo := repository.NewAccountRepository()

	// Core engines
	simEngine := engine.NewEngine(nil)
	tracker := lineage.NewTracker()

	// Services
	authSvc := service.NewAuthService(pool, accountRepo, jwtMgr)
	rosterSvc := service.NewRosterService(pool, rosterRepo, companyRepo, venueRepo, logger)
	showSvc := service.NewShowService(pool, showRepo, venueRepo, companyRepo, rosterRepo,
		outboxRepo, simEngine, policy.DefaultBookingPolicy(), logger)
	titleSvc := service.NewChampionshipService(pool, titleRepo, rosterRepo, outboxRepo, tracker, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	showHandler := handler.NewShowHandler(showSvc)
	titleHandler := handler.NewChampionshipHandler(titleSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Promoter-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticatePromoter(jwtMgr))

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", rosterHandler.CreateCompany)
			r.Get("/{id}", rosterHandler.GetCompany)
			r.Get("/{id}/roster", rosterHandler.ListRoster)
			r.Get("/{id}/shows", showHandler.ListShows)
		})

		r.Route("/wrestlers", func(r chi.Router) {
			r.Post("/", rosterHandler.CreateWrestler)
			r.Get("/{id}", rosterHandler.GetWrestler)
		})

		r.Route("/venues", func(r chi.Router) {
			r.Post("/", rosterHandler.CreateVenue)
			r.Get("/", rosterHandler.ListVenues)
		})

		r.Route("/shows", func(r chi.Router) {
			r.Post("/", showHandler.BookShow)
			r.Get("/{id}", showHandler.GetShow)
			r.Put("/{id}/card", showHandler.ReplaceCard)
			r.Post("/{id}/status", showHandler.Transition)
			r.Post("/{id}/complete", showHandler.CompleteShow)
		})

		r.Route("/championships", func(r chi.Router) {
			r.Post("/", titleHandler.Create)
			r.Get("/{id}", titleHandler.Get)
			r.Post("/{id}/crown", titleHandler.Crown)
			r.Post("/{id}/defend", titleHandler.Defend)
			r.Get("/{id}/lineage", titleHandler.Lineage)
		})
	})

	// Admin-realm routes: manual popularity overrides bypass the
	// simulation and stay behind the admin realm.
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))
		r.Use(auth.RequireRole("admin"))

		r.Post("/wrestlers/{id}/popularity", rosterHandler.BoostPopularity)
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
