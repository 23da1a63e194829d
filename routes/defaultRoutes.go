package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func DefaultRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/", c.GetHome)
	server.GET("/health", c.Health)
}
