package app

import (
	"quiz_backend/docs"
	"quiz_backend/internal/config"
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/model"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no token required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// Quiz-taker routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/mcqs/types", c.question.GetTypes)
		authGroup.GET("/mcqs", c.question.GetQuestions)

		authGroup.POST("/quiz/submit", c.quiz.SubmitAnswers)

		authGroup.GET("/histories", c.quiz.ListHistories)
		authGroup.GET("/histories/:id", c.quiz.GetHistoryDetail)
		authGroup.POST("/histories/:id/certificate", c.certificate.IssueCertificate)
		authGroup.GET("/histories/:id/certificate", c.certificate.GetCertificateURL)
	}

	// Admin routes.
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.POST("/mcq", c.question.CreateMCQ)
		adminGroup.PUT("/mcq/:id", c.question.UpdateMCQ)
		adminGroup.DELETE("/mcq/:id", c.question.DeleteMCQ)

		adminGroup.GET("/users", c.user.ListUsers)
		adminGroup.GET("/users/:id", c.user.GetUser)
		adminGroup.PUT("/users/:id", c.user.UpdateUser)
		adminGroup.DELETE("/users/:id", c.user.DeleteUser)

		adminGroup.POST("/certificates/template", c.certificate.UploadTemplate)
	}
}
