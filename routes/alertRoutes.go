package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
)

// AlertRoutes sets up announcement routes. Active alerts are public;
// management is admin-only.
func AlertRoutes(r *gin.Engine, ac *controllers.AlertController, auth gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	alerts := r.Group("/api/alerts")
	{
		alerts.GET("/active", ac.ListActive)
		alerts.GET("", auth, adminOnly, ac.List)
		alerts.POST("", auth, adminOnly, ac.Create)
		alerts.PATCH("/:id", auth, adminOnly, ac.Update)
		alerts.DELETE("/:id", auth, adminOnly, ac.Delete)
	}
}
