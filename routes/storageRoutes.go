package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func StorageRoutes(api *gin.RouterGroup, c *controllers.Controller, admin []gin.HandlerFunc) {
	api.GET("/storage", c.GetBlob)
	api.POST("/storage", guarded(admin, c.PutBlob)...)
	api.DELETE("/storage", guarded(admin, c.DeleteBlob)...)
}
