package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/keyforge/keyforge-go/internal/breach"
	"github.com/keyforge/keyforge-go/internal/config"
	"github.com/keyforge/keyforge-go/internal/handler"
	"github.com/keyforge/keyforge-go/internal/middleware"
	"github.com/keyforge/keyforge-go/internal/repository"
	"github.com/keyforge/keyforge-go/internal/rpc"
	"github.com/keyforge/keyforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	genService := service.NewGeneratorService(cfg.GeneratorSilentEmpty)
	genHandler := handler.NewGeneratorHandler(genService)

	checker := breach.NewCheckerWithClient(cfg.BreachBaseURL, &http.Client{Timeout: cfg.BreachTimeout})
	strengthService := service.NewStrengthService(checker)
	strengthHandler := handler.NewStrengthHandler(strengthService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/generate", genHandler.HandleGenerate)
	r.Post("/api/v1/generate/passphrase", genHandler.HandleGeneratePassphrase)
	r.Post("/api/v1/strength", strengthHandler.HandleCheckStrength)
	r.Post("/api/v1/breach", strengthHandler.HandleCheckBreach)

	// Forward vault backend commands when a backend bridge is configured.
	if cfg.BackendURL != "" {
		bridge := rpc.WithRetry(rpc.NewClient(cfg.BackendURL, &http.Client{Timeout: 30 * time.Second}))
		backendHandler := handler.NewBackendHandler(bridge)
		r.Post("/api/v1/backend/{command}", backendHandler.HandleCommand)
	}

	// Initialize DB and auth routes if database is available.
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed — auth routes disabled", "error", err)
	} else {
		userRepo := repository.NewUserRepository(db)
		authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(authService)

		vaultRepo := repository.NewVaultRepository(db)
		vaultService := service.NewVaultService(vaultRepo)
		vaultHandler := handler.NewVaultHandler(vaultService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/api/v1/auth/register", authHandler.HandleRegister)
			r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/auth/me", authHandler.HandleMe)

			r.Get("/api/v1/vault", vaultHandler.HandleListEntries)
			r.Post("/api/v1/vault", vaultHandler.HandleCreateEntry)
			r.Put("/api/v1/vault/{entry_id}", vaultHandler.HandleUpdateEntry)
			r.Delete("/api/v1/vault/{entry_id}", vaultHandler.HandleDeleteEntry)
			r.Post("/api/v1/vault/sync", vaultHandler.HandleSync)
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
