package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/controllers"
	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	batchController *controllers.BatchController,
	statsController *controllers.StatsController,
	catalogController *controllers.CatalogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Catalog (read-only)
		authenticated.GET("/classes", catalogController.GetClasses)
		authenticated.GET("/subjects", catalogController.GetSubjects)
		authenticated.GET("/packages", catalogController.GetPackages)

		// Student directory
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.GET("/getstudent/getbyAuthId", studentController.GetStudentByAuthID)
			students.GET("/class/:classId", studentController.GetStudentsByClass)
			students.GET("/subject/:subjectId/class/:classId", studentController.GetStudentsBySubjectAndClass)
			students.GET("/batch/subject/:subjectId", studentController.GetEligibleStudents)
			students.GET("/stats/subscription", studentController.GetSubscriptionStats)

			// Mutations are admin-only
			studentsAdminProtected := students.Group("")
			studentsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				studentsAdminProtected.POST("", studentController.CreateStudent)
				studentsAdminProtected.PUT("/:id", studentController.UpdateStudent)
				studentsAdminProtected.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		// Batch registry
		batches := authenticated.Group("/batches")
		{
			batches.GET("", batchController.GetAllBatches)
			batches.GET("/:id", batchController.GetBatchByID)
			// The service additionally checks the caller's role from the
			// token claims on the teacher listing.
			batches.GET("/teacher/:teacherId", batchController.GetBatchesByTeacher)
			batches.GET("/student/:studentId", batchController.GetBatchesByStudent)

			batchesAdminProtected := batches.Group("")
			batchesAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				batchesAdminProtected.POST("", batchController.CreateBatch)
			}
		}

		// Dashboard aggregations are admin-only
		stats := authenticated.Group("/stats")
		stats.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			stats.GET("/charts", statsController.GetChartStats)
		}
	}
}
