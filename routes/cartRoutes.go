package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func CartRoutes(api *gin.RouterGroup, c *controllers.Controller) {
	api.GET("/cart", c.GetCart)
	api.POST("/cart", c.CreateCartItem)
	api.PATCH("/cart", c.UpdateCartItem)
	api.DELETE("/cart", c.DeleteCartItem)
	api.POST("/cart/checkout", c.CheckoutCart)
}
