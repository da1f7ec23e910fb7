package app

import (
	"student_portal_backend/internal/config"
	"student_portal_backend/internal/middleware"
	"student_portal_backend/internal/model"
	"student_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes shared by both roles.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.GET("/subjects", c.assessment.ListSubjects)
	}

	// Student routes. Admins pass the role gate too, but the handlers
	// resolve the student profile and reject accounts that lack one.
	student := router.Group("/api/student")
	student.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Student))
	{
		student.GET("/dashboard", c.dashboard.Student)
		student.PUT("/profile", c.student.UpdateProfile)
		student.GET("/attendance", c.attendance.MyAttendance)
		student.GET("/assessments", c.assessment.Available)
		student.GET("/assessments/:id/take", c.assessment.Take)
		student.POST("/submissions", c.submission.Submit)
		student.GET("/results", c.submission.MyResults)
		student.GET("/results/:id", c.submission.MyResult)
	}

	// Admin routes.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.Admin)

		admin.GET("/students", c.student.List)
		admin.GET("/students/pending", c.student.ListPending)
		admin.GET("/students/:id", c.student.Get)
		admin.POST("/students/:id/approve", c.student.Approve)
		admin.POST("/students/:id/decline", c.student.Decline)

		admin.GET("/attendance", c.attendance.List)
		admin.POST("/attendance", c.attendance.Add)
		admin.POST("/attendance/bulk", c.attendance.BulkAdd)
		admin.PUT("/attendance/:id", c.attendance.Update)
		admin.DELETE("/attendance/:id", c.attendance.Delete)

		admin.GET("/assessments", c.assessment.List)
		admin.POST("/assessments", c.assessment.Create)
		admin.GET("/assessments/:id", c.assessment.Get)
		admin.PUT("/assessments/:id", c.assessment.Update)
		admin.DELETE("/assessments/:id", c.assessment.Delete)
		admin.GET("/assessments/:id/questions", c.assessment.Questions)
		admin.GET("/assessments/:id/results", c.submission.ListByAssessment)

		admin.GET("/results/:id", c.submission.GetResult)
		admin.POST("/results/:id/grade", c.submission.Grade)

		admin.POST("/subjects", c.assessment.CreateSubject)
	}
}
