// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dompet/ledger/config"
	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/application/usecase/asset"
	"github.com/dompet/ledger/internal/application/usecase/auth"
	"github.com/dompet/ledger/internal/application/usecase/record"
	"github.com/dompet/ledger/internal/application/usecase/user"
	"github.com/dompet/ledger/internal/infra/cache"
	"github.com/dompet/ledger/internal/infra/server/router"
	"github.com/dompet/ledger/internal/integration/adapters"
	"github.com/dompet/ledger/internal/integration/email"
	"github.com/dompet/ledger/internal/integration/email/templates"
	"github.com/dompet/ledger/internal/integration/entrypoint/controller"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
	"github.com/dompet/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	EmailWorker      *email.Worker
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case ledger mutations are serialized by the
// database row locks alone and login attempts are counted per process.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	assetRepo := persistence.NewAssetRepository(db)
	recordRepo := persistence.NewRecordRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	transactor := persistence.NewTransactor(db)

	// Adapters
	passwords := adapters.NewPasswordHasher(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	var ledgerLock adapter.LedgerLock
	var loginAttempts adapter.AttemptCounter
	var cacheHealthChecker func() bool
	if redisClient != nil {
		ledgerLock = adapters.NewRedisLedgerLock(redisClient, cfg.Ledger.LockTTL, cfg.Ledger.LockWait)
		loginAttempts = adapters.NewRedisAttemptCounter(redisClient, "ratelimit:login:")
		cacheHealthChecker = cache.HealthCheck(redisClient)
	} else {
		ledgerLock = adapters.NewNoopLedgerLock()
		loginAttempts = adapters.NewMemoryAttemptCounter()
	}

	// Email
	mailer := email.NewMailer(emailQueueRepo)
	var emailWorker *email.Worker
	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}

		var provider adapter.MailProvider = email.LogProvider{}
		if cfg.Email.ResendAPIKey != "" {
			provider, err = email.NewResendProvider(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
			if err != nil {
				return nil, err
			}
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		}

		emailWorker = email.NewWorker(emailQueueRepo, provider, renderer, email.WorkerConfig{
			PollInterval:    cfg.Email.PollInterval,
			BatchSize:       cfg.Email.BatchSize,
			CleanupInterval: email.DefaultWorkerConfig().CleanupInterval,
			Retention:       cfg.Email.Retention,
		})
	}

	// Auth use cases
	verifyURL := cfg.Email.APIBaseURL + "/api/v1/verify-email"
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwords, tokenService, mailer, verifyURL, cfg.JWT.VerifyTokenExpiry)
	verifyEmailUseCase := auth.NewVerifyEmailUseCase(userRepo, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwords, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	requestPasswordResetUseCase := auth.NewRequestPasswordResetUseCase(userRepo, resetTokenService, mailer, cfg.Email.AppBaseURL)
	confirmPasswordResetUseCase := auth.NewConfirmPasswordResetUseCase(userRepo, passwords, tokenService, resetTokenService)

	// User use cases
	getUserUseCase := user.NewGetUserUseCase(userRepo, assetRepo, recordRepo)
	deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, assetRepo, recordRepo, tokenService, transactor, ledgerLock)

	// Asset use cases
	createAssetUseCase := asset.NewCreateAssetUseCase(assetRepo)
	listAssetsUseCase := asset.NewListAssetsUseCase(assetRepo)
	getAssetUseCase := asset.NewGetAssetUseCase(assetRepo)
	updateAssetUseCase := asset.NewUpdateAssetUseCase(assetRepo)
	deleteAssetUseCase := asset.NewDeleteAssetUseCase(assetRepo)

	// Record use cases
	createRecordUseCase := record.NewCreateRecordUseCase(recordRepo, assetRepo, transactor, ledgerLock)
	listRecordsUseCase := record.NewListRecordsUseCase(recordRepo)
	getRecordUseCase := record.NewGetRecordUseCase(recordRepo)
	updateRecordUseCase := record.NewUpdateRecordUseCase(recordRepo, assetRepo, transactor, ledgerLock)
	deleteRecordUseCase := record.NewDeleteRecordUseCase(recordRepo, assetRepo, transactor, ledgerLock)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		verifyEmailUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		requestPasswordResetUseCase,
		confirmPasswordResetUseCase,
	)

	userController := controller.NewUserController(getUserUseCase, deleteUserUseCase)

	assetController := controller.NewAssetController(
		createAssetUseCase,
		listAssetsUseCase,
		getAssetUseCase,
		updateAssetUseCase,
		deleteAssetUseCase,
	)

	recordController := controller.NewRecordController(
		createRecordUseCase,
		listRecordsUseCase,
		getRecordUseCase,
		updateRecordUseCase,
		deleteRecordUseCase,
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter(loginAttempts, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		assetController,
		recordController,
		loginRateLimiter,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		EmailWorker:      emailWorker,
		LoginRateLimiter: loginRateLimiter,
	}, nil
}
