package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
)

// AdminRoutes sets up department and account management routes.
func AdminRoutes(r *gin.Engine, ac *controllers.AdminController, auth gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	admin := r.Group("/api/admin", auth, adminOnly)
	{
		admin.POST("/departments", ac.CreateDepartment)
		admin.GET("/departments", ac.ListDepartments)
		admin.POST("/department-users", ac.CreateDepartmentUser)
		admin.GET("/department-users", ac.ListDepartmentUsers)
		admin.PATCH("/department-users/:id", ac.UpdateDepartmentUser)
		admin.DELETE("/department-users/:id", ac.DeleteDepartmentUser)
		admin.POST("/users", ac.CreateAdminUser)
	}
}
