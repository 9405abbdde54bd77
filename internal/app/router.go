package app

import (
	"school_backend/docs"
	"school_backend/internal/config"
	"school_backend/internal/middleware"
	"school_backend/internal/model"
	"school_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api/v1")

	// Public routes.
	api.GET("/health", c.health.HealthCheck)
	api.GET("/categories", c.category.List)
	api.POST("/students/register", c.student.Register)
	api.POST("/students/login", c.student.Login)
	api.POST("/teachers/register", c.teacher.Register)
	api.POST("/teachers/login", c.teacher.Login)
	api.POST("/parents/register", c.parent.Register)
	api.POST("/parents/login", c.parent.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		teacherOnly := middleware.RoleMiddleware(model.RoleTeacher)
		studentOnly := middleware.RoleMiddleware(model.RoleStudent)

		// Accounts.
		authed.GET("/students", teacherOnly, c.student.List)
		authed.GET("/students/:id", c.student.Get)
		authed.PUT("/students/:id", c.student.Update)
		authed.DELETE("/students/:id", teacherOnly, c.student.Delete)

		authed.GET("/teachers", c.teacher.List)
		authed.GET("/teachers/:id", c.teacher.Get)
		authed.PUT("/teachers/:id", c.teacher.Update)
		authed.DELETE("/teachers/:id", teacherOnly, c.teacher.Delete)
		authed.POST("/teachers/profile-image", teacherOnly, c.teacher.UploadProfileImage)

		authed.GET("/parents", teacherOnly, c.parent.List)
		authed.GET("/parents/:id", c.parent.Get)
		authed.PUT("/parents/:id", c.parent.Update)
		authed.DELETE("/parents/:id", teacherOnly, c.parent.Delete)

		authed.POST("/categories", teacherOnly, c.category.Create)

		// Lessons.
		authed.POST("/lessons", teacherOnly, c.lesson.Create)
		authed.GET("/lessons", c.lesson.List)
		authed.GET("/lessons/teacher", teacherOnly, c.lesson.ListForTeacher)
		authed.GET("/lessons/:id", c.lesson.Get)
		authed.PUT("/lessons/:id", teacherOnly, c.lesson.Update)
		authed.DELETE("/lessons/:id", teacherOnly, c.lesson.Delete)
		authed.POST("/lessons/:id/topics", teacherOnly, c.lesson.AddTopic)
		authed.GET("/lessons/:id/topics", c.lesson.ListTopics)

		// Assignments.
		authed.POST("/assignments", teacherOnly, c.assignment.Create)
		authed.GET("/assignments", c.assignment.List)
		authed.GET("/assignments/:id", c.assignment.Get)
		authed.PUT("/assignments/:id", teacherOnly, c.assignment.Update)
		authed.DELETE("/assignments/:id", teacherOnly, c.assignment.Delete)

		// Exams.
		authed.POST("/exams", teacherOnly, c.exam.Create)
		authed.GET("/exams/teacher", teacherOnly, c.exam.ListForTeacher)
		authed.GET("/exams/student", studentOnly, c.exam.ListForStudent)
		authed.GET("/exams/:id", c.exam.Get)
		authed.PUT("/exams/:id", teacherOnly, c.exam.Update)
		authed.DELETE("/exams/:id", teacherOnly, c.exam.Delete)
		authed.GET("/exams/:id/results", teacherOnly, c.exam.Results)

		// Exam attempts.
		authed.POST("/exam-responses/start/:examId", studentOnly, c.response.Start)
		authed.GET("/exam-responses/student", studentOnly, c.response.ListForStudent)
		authed.GET("/exam-responses/:responseId", c.response.Get)
		authed.POST("/exam-responses/:responseId/answer", studentOnly, c.response.Answer)
		authed.POST("/exam-responses/:responseId/submit", studentOnly, c.response.Submit)
		authed.POST("/exam-responses/:responseId/grade", teacherOnly, c.response.Grade)
	}
}
