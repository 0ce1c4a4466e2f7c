package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appAuth "github.com/RHD-founder/thukpa/pkg/app/auth"
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/RHD-founder/thukpa/pkg/cache"
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/config"
	handlers "github.com/RHD-founder/thukpa/pkg/handlers/http"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/database"
	"github.com/RHD-founder/thukpa/pkg/infra/fingerprint"
	infraLogger "github.com/RHD-founder/thukpa/pkg/infra/logger"
	_ "github.com/RHD-founder/thukpa/pkg/infra/migrations"
	"github.com/RHD-founder/thukpa/pkg/infra/prometheus"
	"github.com/RHD-founder/thukpa/pkg/infra/repository"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/RHD-founder/thukpa/pkg/middleware"
	"github.com/RHD-founder/thukpa/pkg/server"
	"github.com/RHD-founder/thukpa/pkg/server/router"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("./config"); err != nil {
		log.Printf("config: %v", err)
	}
	cfg := config.GetConfig()

	logger := infraLogger.NewLogger(cfg.Logging.Level)

	prometheus.Initialize()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(common.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}
	defer cacheInstance.Close()

	// repositories
	threatEventRepository := repository.NewThreatEventRepository(db.DB)
	blockedDeviceRepository := repository.NewBlockedDeviceRepository(db.DB)
	feedbackRepository := repository.NewFeedbackRepository(db.DB)
	userRepository := repository.NewUserRepository(db.DB)
	auditLogRepository := repository.NewAuditLogRepository(db.DB)
	sessionRepository := repository.NewSessionRepository(cacheInstance)

	// threat detection
	eventWriter := security.NewEventWriter(logger, threatEventRepository, cfg.Security.EventQueueSize)
	eventWriter.Start()
	blockWriter := security.NewBlockedDeviceWriter(logger, blockedDeviceRepository)
	monitor := security.NewMonitor(cfg.Security, logger, eventWriter, blockWriter)

	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 10*time.Second)
	if devices, err := blockedDeviceRepository.List(restoreCtx); err != nil {
		logger.WithError(err).Warn("failed to restore blocked devices")
	} else {
		monitor.RestoreBlocked(devices)
	}
	cancelRestore()

	monitor.Start()

	generator := fingerprint.NewGenerator()
	auditService := auditlogs.NewService(auditLogRepository, logger)

	// application services
	authenticator := appAuth.NewAuthenticator(logger, userRepository, sessionRepository, cfg.Session.TTL)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := appAuth.EnsureAdmin(
		bootstrapCtx,
		logger,
		userRepository,
		os.Getenv("ADMIN_EMAIL"),
		os.Getenv("ADMIN_PASSWORD"),
		os.Getenv("ADMIN_NAME"),
	); err != nil {
		logger.WithError(err).Warn("failed to bootstrap admin account")
	}
	cancelBootstrap()

	feedbackCreator := appFeedback.NewCreator(logger, feedbackRepository)
	feedbackFinder := appFeedback.NewFinder(logger, feedbackRepository)
	feedbackStatusUpdater := appFeedback.NewStatusUpdater(logger, feedbackRepository)
	feedbackDeleter := appFeedback.NewDeleter(logger, feedbackRepository)
	feedbackStats := appFeedback.NewStatsProvider(logger, feedbackRepository)
	feedbackAnalyzer := appFeedback.NewAnalyzer(logger, feedbackRepository)
	feedbackExporter := appFeedback.NewExporter(logger, feedbackRepository)

	middlewareTransport := &middleware.Transport{
		SecurityHeadersMiddleware: middleware.NewSecurityHeadersMiddleware(logger, &cfg.Security),
		ThreatMiddleware:          middleware.NewThreatMiddleware(logger, monitor, generator, &cfg.Security),
		AuthMiddleware:            middleware.NewAuthMiddleware(logger, authenticator, monitor),
		MetricsMiddleware:         middleware.NewMetricsMiddleware(logger),
	}

	handlerTransport := handlers.HandlerTransport{
		// Feedback
		CreateFeedbackHandler:       handlers.NewCreateFeedbackHandler(logger, feedbackCreator),
		ListFeedbackHandler:         handlers.NewListFeedbackHandler(logger, feedbackFinder),
		GetFeedbackHandler:          handlers.NewGetFeedbackHandler(logger, feedbackFinder),
		UpdateFeedbackStatusHandler: handlers.NewUpdateFeedbackStatusHandler(logger, feedbackStatusUpdater, auditService),
		DeleteFeedbackHandler:       handlers.NewDeleteFeedbackHandler(logger, feedbackDeleter, auditService),
		FeedbackStatsHandler:        handlers.NewFeedbackStatsHandler(logger, feedbackStats),
		AnalyticsHandler:            handlers.NewAnalyticsHandler(logger, feedbackAnalyzer),
		ExportFeedbackHandler:       handlers.NewExportFeedbackHandler(logger, feedbackExporter, auditService),
		// Auth
		LoginHandler:  handlers.NewLoginHandler(logger, authenticator, monitor, generator, auditService, cfg.Session.Secure),
		LogoutHandler: handlers.NewLogoutHandler(logger, authenticator, monitor, auditService),
		MeHandler:     handlers.NewMeHandler(logger),
		// Security admin
		SecurityStatsHandler: handlers.NewSecurityStatsHandler(logger, monitor),
		ThreatEventsHandler:  handlers.NewThreatEventsHandler(logger, threatEventRepository),
		BlockDeviceHandler:   handlers.NewBlockDeviceHandler(logger, monitor, auditService),
		UnblockDeviceHandler: handlers.NewUnblockDeviceHandler(logger, monitor, auditService),
		AuditLogsHandler:     handlers.NewAuditLogsHandler(logger, auditLogRepository),
		// Misc
		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewBaseServer(cfg, logger).
		WithMiddleware(middlewareTransport).
		WithRouters(router.NewAPIRouter(middlewareTransport, handlerTransport))

	group, ctx := errgroup.WithContext(context.Background())
	group.Go(srv.Run)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Error("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	if err := monitor.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("error stopping security monitor")
	}
	eventWriter.Close()
	if err := auditService.Close(); err != nil {
		logger.WithError(err).Error("error draining audit log service")
	}
	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("server exited with error")
	}
	logger.Info("server gracefully stopped")
}
