package app

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/controller"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/pkg/database"
	"callcenter_english_backend/pkg/logger"
	"callcenter_english_backend/pkg/monitoring"
	"callcenter_english_backend/pkg/security"
	"callcenter_english_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user          *repository.UserRepository
	progress      *repository.ProgressRepository
	skill         *repository.SkillRepository
	quiz          *repository.QuizRepository
	speaking      *repository.SpeakingRepository
	lesson        *repository.LessonRepository
	scenario      *repository.ScenarioRepository
	assessment    *repository.AssessmentRepository
	certification *repository.CertificationRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	progress      *service.ProgressService
	lesson        *service.LessonService
	quiz          *service.QuizService
	ai            *service.AIService
	transcription *service.TranscriptionService
	tts           *service.TTSService
	speaking      *service.SpeakingService
	assessment    *service.AssessmentService
	storage       *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	progress   *controller.ProgressController
	lesson     *controller.LessonController
	quiz       *controller.QuizController
	ai         *controller.AIController
	tts        *controller.TTSController
	assessment *controller.AssessmentController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		progress:      repository.NewProgressRepository(db),
		skill:         repository.NewSkillRepository(db),
		quiz:          repository.NewQuizRepository(db),
		speaking:      repository.NewSpeakingRepository(db),
		lesson:        repository.NewLessonRepository(db),
		scenario:      repository.NewScenarioRepository(db),
		assessment:    repository.NewAssessmentRepository(db),
		certification: repository.NewCertificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.progress)
	s.ai = service.NewAIService(cfg.OpenAI)
	s.transcription = service.NewTranscriptionService(cfg.OpenAI)
	s.tts = service.NewTTSService(cfg, rdb)
	s.progress = service.NewProgressService(repos.progress, repos.skill, s.ai)
	s.lesson = service.NewLessonService(repos.lesson)
	s.quiz = service.NewQuizService(repos.quiz)
	s.speaking = service.NewSpeakingService(repos.speaking, repos.scenario, s.ai, s.transcription, s.storage)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.certification, repos.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		progress:   controller.NewProgressController(s.progress),
		lesson:     controller.NewLessonController(s.lesson),
		quiz:       controller.NewQuizController(s.quiz),
		ai:         controller.NewAIController(s.speaking, s.ai, a.Config),
		tts:        controller.NewTTSController(s.tts, s.lesson, s.speaking),
		assessment: controller.NewAssessmentController(s.assessment),
		health:     controller.NewHealthController(db),
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

// ApplyConfig pushes reloaded provider settings into the running
// services. Only the AI provider surfaces react to hot reloads; the
// database, server, and storage settings require a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.ai.SetConfig(cfg.OpenAI)
	a.services.transcription.SetConfig(cfg.OpenAI)
	a.services.tts.SetConfig(cfg.OpenAI)
	logger.Log.Info("Provider configuration reloaded")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, TTS caching disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("callcenter-english", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == config.StorageTypeLocal {
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

	logger.Log.Sync()
	log.Println("Server exiting")
}
