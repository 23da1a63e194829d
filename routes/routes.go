package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/controllers"
)

// Setup registers every route on server. admin guards the administrative
// endpoints and may be empty.
func Setup(server *gin.Engine, c *controllers.Controller, admin ...gin.HandlerFunc) {
	server.HandleMethodNotAllowed = true
	server.NoMethod(controllers.MethodNotAllowed)
	server.NoRoute(controllers.NotFound)

	DefaultRoutes(server, c)

	api := server.Group("/api")
	ProductRoutes(api, c, admin)
	TagRoutes(api, c, admin)
	CartRoutes(api, c)
	OrderRoutes(api, c, admin)
	AuthRoutes(api, c)
	FeedbackRoutes(api, c, admin)
	StorageRoutes(api, c, admin)
	api.GET("/audit", guarded(admin, c.GetAuditLog)...)
}

func guarded(admin []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, admin...), h)
}

// unlessQuery wraps each admin handler so it is skipped when the request
// carries the named query parameter.
func unlessQuery(param string, admin []gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, len(admin))
	for i, h := range admin {
		h := h // per-iteration copy; go directive predates Go 1.22 loopvar semantics
		out[i] = func(ctx *gin.Context) {
			if ctx.Query(param) != "" {
				ctx.Next()
				return
			}
			h(ctx)
		}
	}
	return out
}
