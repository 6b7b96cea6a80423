package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
)

// UploadRoutes sets up the evidence upload routes and serves the stored
// files statically.
func UploadRoutes(r *gin.Engine, uc *controllers.UploadController, auth gin.HandlerFunc, uploadsDir string) {
	uploads := r.Group("/api/uploads", auth)
	{
		uploads.POST("", uc.Single)
		uploads.POST("/multiple", uc.Multiple)
	}
	r.Static("/uploads", uploadsDir)
}
