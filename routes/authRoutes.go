package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func AuthRoutes(api *gin.RouterGroup, c *controllers.Controller) {
	api.GET("/users", c.GetUser)
	api.POST("/users", c.UpsertUser)
	api.GET("/admins", c.CheckAdmin)
}
