package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

func FeedbackRoutes(api *gin.RouterGroup, c *controllers.Controller, admin []gin.HandlerFunc) {
	api.GET("/feedback", c.GetFeedback)
	api.POST("/feedback", c.CreateFeedback)
	api.GET("/contact", guarded(admin, c.GetContactMessages)...)
	api.POST("/contact", c.CreateContactMessage)
}
