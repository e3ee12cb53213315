// Package main runs the KAMP donation platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamp-aid/backend/config"
	"github.com/kamp-aid/backend/internal/admin"
	"github.com/kamp-aid/backend/internal/applications"
	"github.com/kamp-aid/backend/internal/auth"
	"github.com/kamp-aid/backend/internal/donations"
	"github.com/kamp-aid/backend/internal/emaillog"
	"github.com/kamp-aid/backend/internal/middleware"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/internal/profiles"
	"github.com/kamp-aid/backend/internal/projects"
	"github.com/kamp-aid/backend/internal/worker"
	"github.com/kamp-aid/backend/pkg/database"
	"github.com/kamp-aid/backend/pkg/queue"
	"github.com/kamp-aid/backend/pkg/redis"
	"github.com/kamp-aid/backend/pkg/response"
	"github.com/kamp-aid/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ImagesBucket:         cfg.AWS.ImagesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Profiles and moderation
	profileStore := profiles.NewPostgresStore(pool)
	profileService := profiles.NewService(profileStore, cfg.Moderation.ClearReasonOnReactivate)
	profileHandler := profiles.NewHandler(profileService, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, profileService, jwtService, logger)

	// Projects
	projectRepo := projects.NewRepository(pool)
	projectHandler := projects.NewHandler(projectRepo, s3Client, logger)

	// Donations
	donationStore := donations.NewPostgresStore(pool)
	donationHandler := donations.NewHandler(donationStore, jobQueue, logger)

	// Partnership applications
	applicationRepo := applications.NewRepository(pool)
	applicationHandler := applications.NewHandler(applicationRepo, logger)

	// Admin moderation, members and dashboard stats
	adminHandler := admin.NewHandler(profileService, projectRepo, logger)
	membersHandler := admin.NewMembersHandler(authRepo, logger)
	statsHandler := admin.NewStatsHandler(profileStore, donationStore, logger)

	// Receipt worker (in-process; cmd/worker runs the same loop standalone)
	emailRepo := emaillog.NewRepository(pool)
	receiptProcessor := worker.NewReceiptProcessor(emailRepo, projectRepo, jobQueue, cfg.Email, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok", "service": "kamp-backend"}) })

	api := router.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public reads and submissions. Project listings include private projects
	// when the caller presents an admin token.
	api.GET("/projects", middleware.OptionalJWT(jwtService), projectHandler.List)
	api.GET("/projects/:id", projectHandler.GetByID)
	api.POST("/donations", donationHandler.Create)
	api.GET("/donations/project/:projectId", donationHandler.ListByProject)
	api.POST("/applications", applicationHandler.Create)

	// Authenticated: own profile setup
	me := api.Group("/profiles")
	me.Use(middleware.JWT(jwtService))
	{
		me.GET("/org/me", middleware.RequireType(string(models.TypeOrganization)), profileHandler.GetOrg)
		me.PUT("/org/me", middleware.RequireType(string(models.TypeOrganization)), profileHandler.UpdateOrg)
		me.GET("/individual/me", middleware.RequireType(string(models.TypeIndividual)), profileHandler.GetIndividual)
		me.PUT("/individual/me", middleware.RequireType(string(models.TypeIndividual)), profileHandler.UpdateIndividual)
	}

	// Admin only
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWT(jwtService), middleware.RequireType(string(models.TypeAdmin)))
	{
		adminGroup.GET("/organizations", adminHandler.List(models.KindOrganization))
		adminGroup.GET("/organizations/:id", adminHandler.Get(models.KindOrganization))
		adminGroup.GET("/organizations/:id/projects", adminHandler.Projects)
		adminGroup.PUT("/organizations/:id/status", adminHandler.SetStatus(models.KindOrganization))
		adminGroup.PUT("/organizations/:id/action", adminHandler.Action(models.KindOrganization))
		adminGroup.DELETE("/organizations/:id", adminHandler.Delete(models.KindOrganization))

		adminGroup.GET("/supporters", adminHandler.List(models.KindIndividual))
		adminGroup.GET("/supporters/:id", adminHandler.Get(models.KindIndividual))
		adminGroup.PUT("/supporters/:id/status", adminHandler.SetStatus(models.KindIndividual))
		adminGroup.PUT("/supporters/:id/action", adminHandler.Action(models.KindIndividual))
		adminGroup.DELETE("/supporters/:id", adminHandler.Delete(models.KindIndividual))

		adminGroup.GET("/members", membersHandler.List)
		adminGroup.POST("/members", membersHandler.Create)
		adminGroup.PUT("/members/:id", membersHandler.Update)
		adminGroup.DELETE("/members/:id", membersHandler.Delete)

		adminGroup.GET("/stats", statsHandler.Stats)
	}

	// Project management and application review (admin)
	manage := api.Group("")
	manage.Use(middleware.JWT(jwtService), middleware.RequireType(string(models.TypeAdmin)))
	{
		manage.POST("/projects", projectHandler.Create)
		manage.PUT("/projects/:id", projectHandler.Update)
		manage.DELETE("/projects/:id", projectHandler.Delete)
		manage.POST("/projects/:id/image", projectHandler.UploadImage)

		manage.GET("/applications", applicationHandler.List)
		manage.PATCH("/applications/:id", applicationHandler.UpdateStatus)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (donation receipts)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go receiptProcessor.Run(workerCtx)
	logger.Info("receipt worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
