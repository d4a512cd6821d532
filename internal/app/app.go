package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/controller"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/monitoring"
	"quiz_backend/pkg/security"
	"quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	mcq        *repository.McqRepository
	submission *repository.SubmissionRepository
	history    *repository.HistoryRepository
	detail     *repository.HistoryDetailRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	question    *service.QuestionService
	quiz        *service.QuizService
	history     *service.HistoryService
	certificate *service.CertificateService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	question    *controller.QuestionController
	quiz        *controller.QuizController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		mcq:        repository.NewMcqRepository(db),
		submission: repository.NewSubmissionRepository(db),
		history:    repository.NewHistoryRepository(db),
		detail:     repository.NewHistoryDetailRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.question = service.NewQuestionService(repos.mcq, repos.submission, rdb)
	s.certificate = service.NewCertificateService(repos.history, repos.submission, repos.user, storage, &cfg.Certificate)
	s.quiz = service.NewQuizService(repos.mcq, repos.submission, repos.history, repos.detail, s.certificate, db)
	s.history = service.NewHistoryService(repos.history, repos.detail, repos.mcq)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		question:    controller.NewQuestionController(s.question),
		quiz:        controller.NewQuizController(s.quiz, s.history),
		certificate: controller.NewCertificateController(s.certificate, s.history, s.storage),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The type cache is an optimization; run without it.
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type != "minio" && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
