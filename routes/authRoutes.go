package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
)

// AuthRoutes sets up registration, login and session routes.
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, auth gin.HandlerFunc) {
	group := r.Group("/api/auth")
	{
		group.POST("/register", ac.Register)
		group.POST("/login", ac.Login)
		group.POST("/logout", ac.Logout)
		group.GET("/me", auth, ac.GetMe)
	}
}
