package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/saat-labs/saat-api/internal/config"
	"github.com/saat-labs/saat-api/internal/database"
	"github.com/saat-labs/saat-api/internal/handler"
	"github.com/saat-labs/saat-api/internal/middleware"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
	"github.com/saat-labs/saat-api/internal/router"
	"github.com/saat-labs/saat-api/internal/service"
	"github.com/saat-labs/saat-api/pkg/ai"
	cloud "github.com/saat-labs/saat-api/pkg/cloudinary"
	"github.com/saat-labs/saat-api/pkg/github"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Assignment{},
		&models.MarkingScheme{},
		&models.Submission{},
		&models.Code{},
		&models.ReportSubmission{},
		&models.VideoMark{},
		&models.VivaQuestionSet{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	generator, err := ai.NewGeminiGenerator(ai.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}

	githubClient := github.New(github.Config{
		BaseURL: cfg.GithubBaseURL,
		Token:   cfg.GithubToken,
		Logger:  logger,
	})

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	schemeRepo := repository.NewMarkingSchemeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	codeRepo := repository.NewCodeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	videoMarkRepo := repository.NewVideoMarkRepository(db)
	vivaQuestionRepo := repository.NewVivaQuestionRepository(db)

	notifier := service.NewNotificationService(natsConn, logger)

	userService := service.NewUserService(userRepo, validate, logger)
	moduleService := service.NewModuleService(moduleRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	schemeService := service.NewMarkingSchemeService(schemeRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, moduleRepo, userRepo, validate, logger)
	gradingService := service.NewGradingService(submissionRepo, codeRepo, reportRepo, videoMarkRepo, schemeRepo, notifier, validate, logger)
	reportService := service.NewReportService(reportRepo, uploader, notifier, validate, logger)
	questionService := service.NewQuestionService(vivaQuestionRepo, generator, validate, logger)
	codeService := service.NewCodeService(codeRepo, validate, logger)
	repoProxyService := service.NewRepoProxyService(githubClient, redisClient, cfg.RepoCacheTTL, logger)
	projectService := service.NewProjectService(submissionRepo, assignmentRepo, moduleRepo, userRepo, codeRepo, reportRepo, videoMarkRepo, vivaQuestionRepo, schemeRepo, gradingService, logger)

	analysisService, err := service.NewAnalysisService(codeRepo, generator, validate, logger)
	if err != nil {
		log.Fatalf("failed to create analysis service: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:          handler.NewUserHandler(userService, logger),
		ModuleHandler:        handler.NewModuleHandler(moduleService, logger),
		AssignmentHandler:    handler.NewAssignmentHandler(assignmentService, logger),
		MarkingSchemeHandler: handler.NewMarkingSchemeHandler(schemeService, logger),
		SubmissionHandler:    handler.NewSubmissionHandler(submissionService, logger),
		MarksHandler:         handler.NewMarksHandler(gradingService, logger),
		ReportHandler:        handler.NewReportHandler(reportService, logger),
		RepoHandler:          handler.NewRepoHandler(repoProxyService, logger),
		AnalysisHandler:      handler.NewAnalysisHandler(analysisService, logger),
		QuestionHandler:      handler.NewQuestionHandler(questionService, logger),
		CodeHandler:          handler.NewCodeHandler(codeService, logger),
		ProjectHandler:       handler.NewProjectHandler(projectService, logger),
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
