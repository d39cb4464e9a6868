package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"edumall_v1_202608/internal/controller"
	"edumall_v1_202608/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth         *controller.AuthController
	User         *controller.UserController
	Product      *controller.ProductController
	Course       *controller.CourseController
	Webinar      *controller.WebinarController
	Announcement *controller.AnnouncementController
	Chatbot      *controller.ChatbotController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers, auth *middleware.AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	api := r.Group("/api")
	{
		// auth 认证组
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", ctls.Auth.Login)
			// 注册对公开放；带会话时走委托建号规则
			authGroup.POST("/register", auth.OptionalAuth(), ctls.Auth.Register)
			authGroup.POST("/logout", ctls.Auth.Logout)
			authGroup.POST("/change-password", auth.RequireAuth(), ctls.Auth.ChangePassword)
			authGroup.GET("/profile", auth.RequireAuth(), ctls.Auth.Profile)
		}

		// users 账号管理（委托人可见自己名下，admin 全量）
		users := api.Group("/users", auth.RequireAuth(), middleware.AuditContext())
		{
			users.GET("", ctls.User.List)
			users.GET("/:id", ctls.User.Get)
			users.POST("", ctls.User.Create)
			users.PUT("/:id", ctls.User.Update)
			users.DELETE("/:id", ctls.User.Delete)
		}

		// shop 商城（公开）
		api.GET("/shop", ctls.Product.Shop)

		// products 商品
		products := api.Group("/products")
		{
			products.GET("/:id", ctls.Product.Get)
			// 后台维护要求管理员
			products.GET("", auth.RequireAdmin(), ctls.Product.ListAdmin)
			products.POST("", auth.RequireAdmin(), middleware.AuditContext(), ctls.Product.Create)
			products.PUT("/:id", auth.RequireAdmin(), middleware.AuditContext(), ctls.Product.Update)
			products.DELETE("/:id", auth.RequireAdmin(), ctls.Product.Delete)
		}

		// courses 课程
		courses := api.Group("/courses")
		{
			courses.GET("", ctls.Course.List)
			courses.GET("/my", auth.RequireAuth(), ctls.Course.MyEnrollments)
			courses.GET("/:id", ctls.Course.Get)
			courses.POST("/enroll", auth.RequireAuth(), middleware.AuditContext(), ctls.Course.Enroll)
		}

		// webinars 讲座
		webinars := api.Group("/webinars")
		{
			webinars.GET("", ctls.Webinar.List)
			webinars.GET("/my", auth.RequireAuth(), ctls.Webinar.MyRegistrations)
			webinars.GET("/:id", ctls.Webinar.Get)
			webinars.POST("/register", auth.RequireAuth(), middleware.AuditContext(), ctls.Webinar.Register)
		}

		// announcements 公告（公开只读）
		api.GET("/announcements", ctls.Announcement.ListVisible)

		// chatbot FAQ 机器人（带限流）
		api.POST("/chatbot", middleware.RateLimit(20, time.Minute), ctls.Chatbot.Chat)

		// admin 后台维护组（管理员）
		admin := api.Group("/admin", auth.RequireAdmin(), middleware.AuditContext())
		{
			admin.GET("/courses", ctls.Course.ListAdmin)
			admin.POST("/courses", ctls.Course.Create)
			admin.PUT("/courses/:id", ctls.Course.Update)
			admin.DELETE("/courses/:id", ctls.Course.Delete)

			admin.POST("/webinars", ctls.Webinar.Create)
			admin.PUT("/webinars/:id", ctls.Webinar.Update)
			admin.DELETE("/webinars/:id", ctls.Webinar.Delete)

			admin.GET("/announcements", ctls.Announcement.ListAdmin)
			admin.POST("/announcements", ctls.Announcement.Create)
			admin.PUT("/announcements/:id", ctls.Announcement.Update)
			admin.DELETE("/announcements/:id", ctls.Announcement.Delete)
		}
	}

	return r
}
