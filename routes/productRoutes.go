package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func ProductRoutes(api *gin.RouterGroup, c *controllers.Controller, admin []gin.HandlerFunc) {
	api.GET("/products", c.GetProducts)
	api.GET("/products/:id", c.GetProduct)
	api.POST("/products", guarded(admin, c.UpsertProduct)...)
	api.DELETE("/products", guarded(admin, c.DeleteProduct)...)
	api.POST("/products/:id/images", guarded(admin, c.UploadProductImages)...)
}

func TagRoutes(api *gin.RouterGroup, c *controllers.Controller, admin []gin.HandlerFunc) {
	api.GET("/tags", c.GetTags)
	api.POST("/tags", guarded(admin, c.UpsertTag)...)
	api.DELETE("/tags", guarded(admin, c.DeleteTag)...)
}
