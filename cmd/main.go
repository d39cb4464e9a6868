package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"edumall_v1_202608/internal/config"
	"edumall_v1_202608/internal/controller"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
	"edumall_v1_202608/internal/router"
	"edumall_v1_202608/internal/service"
	"edumall_v1_202608/internal/task"
	"edumall_v1_202608/pkg/database"
	"edumall_v1_202608/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	appLog := logger.New(cfg.Environment)
	appLog.Info().Str("environment", cfg.Environment).Msg("starting edumall")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化数据库
	db := initDatabase(cfg)
	middleware.RegisterAuditCallbacks(db)

	// 3. 种子管理员账号
	if err := database.SeedAdmin(context.Background(), db, database.SeedOptions{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		AdminName:     cfg.Seed.AdminName,
	}); err != nil {
		log.Fatalf("管理员种子数据初始化失败: %v", err)
	}

	// 4. 会话配置
	middleware.SetSessionConfig(&middleware.SessionConfig{
		SecretKey:  cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		Issuer:     cfg.Session.Issuer,
		CookieName: "session",
	})

	// 5. 初始化依赖
	deps := initDependencies(db, cfg)

	// 6. 启动定时任务
	tm := initTasks(deps)
	defer tm.Stop()

	// 7. 初始化路由并启动服务
	r := router.SetupRouter(deps.Controllers, deps.AuthMiddleware)
	startServer(r, cfg)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB             *gorm.DB
	Repos          *Repositories
	Services       *Services
	Controllers    *router.Controllers
	AuthMiddleware *middleware.AuthMiddleware
}

// Repositories 仓库集合
type Repositories struct {
	Account             repository.AccountRepository
	Product             repository.ProductRepository
	Course              repository.CourseRepository
	Enrollment          repository.EnrollmentRepository
	Webinar             repository.WebinarRepository
	WebinarRegistration repository.WebinarRegistrationRepository
	Announcement        repository.AnnouncementRepository
}

// Services 服务集合
type Services struct {
	User         *service.UserService
	Product      *service.ProductService
	Course       *service.CourseService
	Webinar      *service.WebinarService
	Announcement *service.AnnouncementService
	Chatbot      *service.ChatbotService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.AppConfig) *gorm.DB {
	return database.InitDB(
		cfg.Postgres.DSN,
		database.PoolOptions{
			MaxOpen:         cfg.Postgres.MaxOpen,
			MaxIdle:         cfg.Postgres.MaxIdle,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		},
		// Account
		&model.Account{},
		// Catalog
		&model.Product{}, &model.ProductVariant{},
		// Course
		&model.Course{}, &model.Lesson{}, &model.Enrollment{},
		// Webinar
		&model.Webinar{}, &model.WebinarRegistration{},
		// Announcement
		&model.Announcement{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.AppConfig) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 外链探测 --------
	var linkChecker service.LinkChecker
	if cfg.LinkCheck {
		linkChecker = service.NewRestyLinkChecker()
	}

	// -------- 业务服务 --------
	services := &Services{
		User:         service.NewUserService(repos.Account),
		Product:      service.NewProductService(repos.Product, linkChecker),
		Course:       service.NewCourseService(repos.Course, repos.Enrollment, linkChecker),
		Webinar:      service.NewWebinarService(repos.Webinar, repos.WebinarRegistration, linkChecker),
		Announcement: service.NewAnnouncementService(repos.Announcement),
		Chatbot:      service.NewChatbotService(),
	}

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:             db,
		Repos:          repos,
		Services:       services,
		Controllers:    controllers,
		AuthMiddleware: middleware.NewAuthMiddleware(repos.Account),
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Account:             repository.NewAccountRepository(db),
		Product:             repository.NewProductRepository(db),
		Course:              repository.NewCourseRepository(db),
		Enrollment:          repository.NewEnrollmentRepository(db),
		Webinar:             repository.NewWebinarRepository(db),
		WebinarRegistration: repository.NewWebinarRegistrationRepository(db),
		Announcement:        repository.NewAnnouncementRepository(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:         controller.NewAuthController(svc.User),
		User:         controller.NewUserController(svc.User),
		Product:      controller.NewProductController(svc.Product),
		Course:       controller.NewCourseController(svc.Course),
		Webinar:      controller.NewWebinarController(svc.Webinar),
		Announcement: controller.NewAnnouncementController(svc.Announcement),
		Chatbot:      controller.NewChatbotController(svc.Chatbot),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		WebinarService:      deps.Services.Webinar,
		AnnouncementService: deps.Services.Announcement,
	}, nil)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg *config.AppConfig) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
