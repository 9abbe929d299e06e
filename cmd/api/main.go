// Package main is the entry point for the FiscalOps API server.
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

	"github.com/joho/godotenv"

	"github.com/fiscalops/backend/config"
	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/application/usecase/auth"
	"github.com/fiscalops/backend/internal/application/usecase/bracket"
	"github.com/fiscalops/backend/internal/application/usecase/deduction"
	"github.com/fiscalops/backend/internal/application/usecase/income"
	"github.com/fiscalops/backend/internal/application/usecase/taxanalysis"
	"github.com/fiscalops/backend/internal/infra/db"
	"github.com/fiscalops/backend/internal/infra/server/router"
	"github.com/fiscalops/backend/internal/integration/adapters"
	"github.com/fiscalops/backend/internal/integration/email"
	"github.com/fiscalops/backend/internal/integration/entrypoint/controller"
	"github.com/fiscalops/backend/internal/integration/entrypoint/middleware"
	"github.com/fiscalops/backend/internal/integration/persistence"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting FiscalOps API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var database *db.Database
	var dbHealthChecker func() bool

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		dbHealthChecker = func() bool { return false }
	} else {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.DeductionRecordModel{},
			&model.IncomeRecordModel{},
			&model.TaxBracketModel{},
			&model.TaxAnalysisSnapshotModel{},
			&model.RiskAdvisoryModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Create health controller with database health checker
	healthController := controller.NewHealthController(dbHealthChecker)

	// Create controllers and middleware (only if database is available)
	var authController *controller.AuthController
	var deductionController *controller.DeductionController
	var incomeController *controller.IncomeController
	var bracketController *controller.BracketController
	var taxAnalysisController *controller.TaxAnalysisController
	var loginRateLimiter *middleware.RateLimiter
	var authMiddleware *middleware.AuthMiddleware

	if database != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(database.DB())
		tokenRepo := persistence.NewTokenRepository(database.DB())
		deductionRepo := persistence.NewDeductionRecordRepository(database.DB())
		incomeRepo := persistence.NewIncomeRecordRepository(database.DB())
		snapshotRepo := persistence.NewSnapshotRepository(database.DB())
		advisoryRepo := persistence.NewRiskAdvisoryRepository(database.DB())

		// Bracket tables are reference data read on every analysis run, so
		// they sit behind a Redis cache when one is reachable.
		bracketRepo := persistence.NewTaxBracketRepository(database.DB())
		if redisClient, err := db.NewRedisClient(&cfg.Redis); err != nil {
			slog.Warn("Redis connection failed, bracket cache disabled", "error", err)
		} else {
			bracketRepo = persistence.NewCachedTaxBracketRepository(bracketRepo, redisClient, cfg.Redis.CacheTTL)
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

		var emailSender adapter.EmailSender
		if cfg.Email.ResendAPIKey != "" {
			emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			slog.Info("Email notifications enabled")
		}

		advisoryService := adapters.NewGeminiAdvisoryService(cfg.Tax.GeminiAPIKey)

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

		// Create record use cases
		createDeductionUseCase := deduction.NewCreateDeductionUseCase(deductionRepo)
		listDeductionsUseCase := deduction.NewListDeductionsUseCase(deductionRepo)
		reviewDeductionUseCase := deduction.NewReviewDeductionUseCase(deductionRepo)
		deleteDeductionUseCase := deduction.NewDeleteDeductionUseCase(deductionRepo)
		createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo)
		listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
		deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo)

		// Create bracket use cases
		importBracketTableUseCase := bracket.NewImportBracketTableUseCase(bracketRepo)
		listBracketsUseCase := bracket.NewListBracketsUseCase(bracketRepo)

		// Create tax analysis use cases
		aggregateUseCase := taxanalysis.NewAggregateRecordsUseCase(deductionRepo, incomeRepo)
		calculateUseCase := taxanalysis.NewCalculateAndRecordUseCase(
			aggregateUseCase,
			bracketRepo,
			snapshotRepo,
			userRepo,
			emailSender,
			cfg.Tax.FallbackRate,
		)
		listSnapshotsUseCase := taxanalysis.NewListSnapshotsUseCase(snapshotRepo)
		getSnapshotUseCase := taxanalysis.NewGetSnapshotUseCase(snapshotRepo)
		requestAdvisoryUseCase := taxanalysis.NewRequestAdvisoryUseCase(getSnapshotUseCase, advisoryService, advisoryRepo)

		// Create controllers
		authController = controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		)
		deductionController = controller.NewDeductionController(
			createDeductionUseCase,
			listDeductionsUseCase,
			reviewDeductionUseCase,
			deleteDeductionUseCase,
		)
		incomeController = controller.NewIncomeController(
			createIncomeUseCase,
			listIncomesUseCase,
			deleteIncomeUseCase,
		)
		bracketController = controller.NewBracketController(
			importBracketTableUseCase,
			listBracketsUseCase,
		)
		taxAnalysisController = controller.NewTaxAnalysisController(
			calculateUseCase,
			listSnapshotsUseCase,
			getSnapshotUseCase,
			requestAdvisoryUseCase,
		)

		// Create middleware
		loginRateLimiter = middleware.NewRateLimiter()
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		slog.Info("Tax analysis pipeline initialized successfully")
	} else {
		slog.Warn("API endpoints not initialized due to missing database connection")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		authController,
		deductionController,
		incomeController,
		bracketController,
		taxAnalysisController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
