package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
)

// IssueRoutes sets up the issue lifecycle routes.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, auth gin.HandlerFunc, rateLimit gin.HandlerFunc) {
	issue := r.Group("/api/issues")
	{
		issue.POST("", auth, rateLimit, ic.Create)
		issue.POST("/quick-report", auth, rateLimit, ic.QuickReport)
		issue.GET("/mine", auth, ic.ListMine)
		issue.GET("/admin", auth, ic.ListForAdmin)
		issue.GET("/department", auth, ic.ListForDepartment)
		issue.PATCH("/:id", auth, ic.UpdateStatus)
		issue.PATCH("/:id/department-update", auth, ic.DepartmentUpdate)
		issue.POST("/:id/reopen", auth, ic.Reopen)
		issue.POST("/:id/rate", auth, ic.Rate)
		issue.DELETE("/:id", auth, ic.Delete)
	}
}
