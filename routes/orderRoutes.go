package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func OrderRoutes(api *gin.RouterGroup, c *controllers.Controller, admin []gin.HandlerFunc) {
	api.GET("/orders", append(unlessQuery("userId", admin), c.GetOrders)...)
	api.POST("/orders", c.CreateOrder)
	api.PATCH("/orders", guarded(admin, c.UpdateOrderStatus)...)
}
