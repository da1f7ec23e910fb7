package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/controller"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/service"
	"student_portal_backend/pkg/database"
	"student_portal_backend/pkg/logger"
	"student_portal_backend/pkg/monitoring"
	"student_portal_backend/pkg/security"
	"student_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	subject    *repository.SubjectRepository
	attendance *repository.AttendanceRepository
	assessment *repository.AssessmentRepository
	result     *repository.ResultRepository
}

type services struct {
	auth       *service.AuthService
	student    *service.StudentService
	attendance *service.AttendanceService
	assessment *service.AssessmentService
	submission *service.SubmissionService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	student    *controller.StudentController
	attendance *controller.AttendanceController
	assessment *controller.AssessmentController
	submission *controller.SubmissionController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig folds the hot-reloadable settings of a freshly loaded config
// into the running one. Services share a.Config, so the scoring policy and
// cache TTL take effect without a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Assessment = cfg.Assessment
	a.Config.CORS = cfg.CORS
	logger.Log.Info("Config reloaded",
		zap.String("unansweredPolicy", cfg.Assessment.UnansweredPolicy))
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		subject:    repository.NewSubjectRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		result:     repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, repos.student, cfg)
	s.student = service.NewStudentService(repos.student, repos.user)
	s.attendance = service.NewAttendanceService(repos.attendance, repos.subject, repos.student)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.subject)
	s.submission = service.NewSubmissionService(repos.result, repos.assessment, cfg)
	s.dashboard = service.NewDashboardService(repos.student, repos.attendance, repos.assessment, repos.result, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.student),
		student:    controller.NewStudentController(s.student),
		attendance: controller.NewAttendanceController(s.attendance, s.student),
		assessment: controller.NewAssessmentController(s.assessment, s.submission, s.student),
		submission: controller.NewSubmissionController(s.submission, s.student),
		dashboard:  controller.NewDashboardController(s.dashboard, s.student),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Migrations run automatically outside release mode; in release they
	// need the -migrate flag.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The portal runs fine without the dashboard cache.
		logger.Log.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("student-portal", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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
