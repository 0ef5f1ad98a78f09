// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

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

	"github.com/shopspring/decimal"

	"github.com/bhashai/bhashai/internal/agents"
	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/billing"
	"github.com/bhashai/bhashai/internal/bolna"
	"github.com/bhashai/bhashai/internal/calls"
	"github.com/bhashai/bhashai/internal/config"
	"github.com/bhashai/bhashai/internal/enterprise"
	"github.com/bhashai/bhashai/internal/identity"
	"github.com/bhashai/bhashai/internal/observability/logger"
	"github.com/bhashai/bhashai/internal/observability/metrics"
	"github.com/bhashai/bhashai/internal/observability/tracing"
	"github.com/bhashai/bhashai/internal/orgs"
	"github.com/bhashai/bhashai/internal/session"
	"github.com/bhashai/bhashai/internal/store/postgres"
	"github.com/bhashai/bhashai/internal/token"
	transportHTTP "github.com/bhashai/bhashai/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting bhashai admin platform")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	meter, err := metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
	}

	// Initialize database
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	storeSessionRepo := postgres.NewSessionRepository(db)
	enterpriseRepo := postgres.NewEnterpriseRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	channelRepo := postgres.NewChannelRepository(db)
	agentRepo := postgres.NewAgentRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	callLogRepo := postgres.NewCallLogRepository(db)
	billingRepo := postgres.NewBillingRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	// Initialize helpers
	auditLogger := audit.NewSlogLogger()
	passwordHasher := identity.NewPasswordHasher(
		cfg.Security.Argon2Memory,
		cfg.Security.Argon2Iterations,
		cfg.Security.Argon2Parallelism,
		cfg.Security.Argon2SaltLength,
		cfg.Security.Argon2KeyLength,
	)

	// Initialize services
	identityService := identity.NewService(
		userRepo,
		passwordHasher,
		auditLogger,
		cfg.Security.LockoutMaxAttempts,
		cfg.Security.LockoutDuration,
	)
	sessionService := session.NewService(storeSessionRepo, cfg.Session.Lifetime, cfg.Session.IdleTimeout)
	tokenService := token.NewService(cfg.Security.TokenSigningKey, cfg.Security.TokenLifetime)
	enterpriseService := enterprise.NewService(enterpriseRepo, auditLogger)
	orgService := orgs.NewService(orgRepo, channelRepo, auditLogger)
	agentService := agents.NewService(agentRepo, contactRepo, auditLogger)

	billingService := billing.NewService(
		billingRepo,
		auditLogger,
		cfg.Billing.Currency,
		mustDecimal(cfg.Billing.InitialCredits),
		mustDecimal(cfg.Billing.CostPerCall),
	)

	bolnaClient := bolna.NewClient(cfg.Bolna.BaseURL, cfg.Bolna.APIKey, cfg.Bolna.HTTPTimeout)
	if !bolnaClient.Configured() {
		slog.Warn("bolna api key not set, outbound calls will be rejected")
	}

	callService := calls.NewService(callLogRepo, bolnaClient)
	dispatcher := calls.NewDispatcher(
		bolnaClient,
		billingService,
		agentRepo,
		contactRepo,
		callLogRepo,
		auditLogger,
		meter,
		slog.Default(),
		cfg.Bolna.SenderPhone,
	)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Configure SameSite mode
	sameSite := http.SameSiteLaxMode
	switch cfg.Session.CookieSameSite {
	case "Strict":
		sameSite = http.SameSiteStrictMode
	case "None":
		sameSite = http.SameSiteNoneMode
	}

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(
		identityService,
		sessionService,
		tokenService,
		enterpriseService,
		statsRepo,
		orgService,
		agentService,
		billingService,
		callService,
		dispatcher,
		bolnaClient,
		auditLogger,
		transportHTTP.SessionConfig{
			CookieName:     cfg.Session.CookieName,
			CookieDomain:   cfg.Session.CookieDomain,
			CookiePath:     cfg.Session.CookiePath,
			CookieSecure:   cfg.Session.CookieSecure,
			CookieHTTPOnly: cfg.Session.CookieHTTPOnly,
			CookieSameSite: sameSite,
		},
	)

	// Create router
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start session cleanup goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionService.CleanupExpired(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to cleanup expired sessions", logger.Error(err))
			}
		}
	}()

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Migrate(ctx, postgres.InitialSchema)
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		fmt.Printf("Invalid decimal in configuration: %q\n", s)
		os.Exit(1)
	}
	return d
}
