package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trackr/internal/adapter/auth"
	dbadapter "trackr/internal/adapter/db"
	httpadapter "trackr/internal/adapter/http"
	"trackr/internal/adapter/http/handlers"
	httpmiddleware "trackr/internal/adapter/http/middleware"
	"trackr/internal/adapter/http/validation"
	appservice "trackr/internal/app/service"
	"trackr/internal/config"
	"trackr/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()
	if cfg.JWTAccessSecret == "" {
		logger.Fatal("JWT_ACCESS_SECRET is required")
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	if err := validation.RegisterValidators(); err != nil {
		logger.Fatal("failed to register request validators", zap.Error(err))
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	repos := appservice.Repositories{
		Tasks:        dbadapter.NewTaskRepository(db),
		Projects:     dbadapter.NewProjectRepository(db),
		Participants: dbadapter.NewParticipantRepository(db),
		Attachments:  dbadapter.NewAttachmentRepository(db),
		Activities:   dbadapter.NewActivityRepository(db),
		Users:        dbadapter.NewUserRepository(db),
		Tx:           dbadapter.NewTransactor(db),
	}
	activityService := appservice.NewActivityService(repos.Activities)
	participantService := appservice.NewParticipantService(repos, activityService)
	projectService := appservice.NewProjectService(repos, participantService, activityService)
	taskService := appservice.NewTaskService(repos, participantService, activityService)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger), httpmiddleware.MetricsMiddleware())
	httpadapter.RegisterRoutes(r,
		httpadapter.Handlers{
			Health:       handlers.NewHealthHandler(db),
			Projects:     handlers.NewProjectHandler(projectService),
			Tasks:        handlers.NewTaskHandler(taskService),
			Participants: handlers.NewParticipantHandler(participantService),
			Activities:   handlers.NewActivityHandler(activityService),
		},
		httpadapter.Guards{
			Principals:  auth.NewJWTResolver(cfg.JWTAccessSecret),
			Members:     participantService,
			ProjectList: httpmiddleware.NewRateLimiter(cfg.ProjectListWindow, cfg.ProjectListMax),
		},
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
