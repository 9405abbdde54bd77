package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school_backend/internal/config"
	"school_backend/internal/controller"
	"school_backend/internal/repository"
	"school_backend/internal/service"
	"school_backend/pkg/database"
	"school_backend/pkg/logger"
	"school_backend/pkg/monitoring"
	"school_backend/pkg/security"
	"school_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	configCallbacks []func(*config.Config)
}

type repositories struct {
	student    *repository.StudentRepository
	teacher    *repository.TeacherRepository
	parent     *repository.ParentRepository
	category   *repository.CategoryRepository
	lesson     *repository.LessonRepository
	assignment *repository.AssignmentRepository
	exam       *repository.ExamRepository
	response   *repository.ExamResponseRepository
}

type services struct {
	storage    *service.StorageService
	student    *service.StudentService
	teacher    *service.TeacherService
	parent     *service.ParentService
	category   *service.CategoryService
	lesson     *service.LessonService
	assignment *service.AssignmentService
	exam       *service.ExamService
	response   *service.ExamResponseService
}

type controllers struct {
	student    *controller.StudentController
	teacher    *controller.TeacherController
	parent     *controller.ParentController
	category   *controller.CategoryController
	lesson     *controller.LessonController
	assignment *controller.AssignmentController
	exam       *controller.ExamController
	response   *controller.ExamResponseController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a freshly loaded config to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student:    repository.NewStudentRepository(db),
		teacher:    repository.NewTeacherRepository(db),
		parent:     repository.NewParentRepository(db),
		category:   repository.NewCategoryRepository(db),
		lesson:     repository.NewLessonRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		exam:       repository.NewExamRepository(db),
		response:   repository.NewExamResponseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.student = service.NewStudentService(repos.student, cfg, logger.Log)
	s.teacher = service.NewTeacherService(repos.teacher, cfg, logger.Log)
	s.parent = service.NewParentService(repos.parent, cfg, logger.Log)
	s.category = service.NewCategoryService(repos.category)
	s.lesson = service.NewLessonService(repos.lesson, repos.student, repos.category, logger.Log)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.category)
	s.exam = service.NewExamService(repos.exam, repos.response, repos.student, logger.Log)
	s.response = service.NewExamResponseService(repos.exam, repos.response, repos.student, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		student:    controller.NewStudentController(s.student),
		teacher:    controller.NewTeacherController(s.teacher, s.storage, logger.Log),
		parent:     controller.NewParentController(s.parent),
		category:   controller.NewCategoryController(s.category),
		lesson:     controller.NewLessonController(s.lesson, s.storage, logger.Log),
		assignment: controller.NewAssignmentController(s.assignment),
		exam:       controller.NewExamController(s.exam),
		response:   controller.NewExamResponseController(s.response),
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

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("school-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
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
