package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const homeMessage = `Saree storefront API.

PRODUCTS
- GET    /api/products            list, filter with color, fabric, occasion, style, dressType, minPrice, maxPrice, q
- GET    /api/products/:id        one product
- POST   /api/products            create or replace (admin)
- DELETE /api/products?id=        delete (admin)
- POST   /api/products/:id/images upload images (admin)

TAGS
- GET    /api/tags
- POST   /api/tags                create or replace (admin)
- DELETE /api/tags?id=            delete (admin)

CART (X-Cart-Session header)
- GET    /api/cart
- POST   /api/cart                {productId}
- PATCH  /api/cart                {itemId, quantity}
- DELETE /api/cart[?itemId=]
- POST   /api/cart/checkout

ORDERS
- GET    /api/orders[?userId=]    all orders without userId (admin)
- POST   /api/orders
- PATCH  /api/orders              {id, status} (admin)

USERS
- GET    /api/users?id=
- POST   /api/users
- GET    /api/admins?id=

OTHER
- GET|POST        /api/feedback
- GET|POST        /api/contact (list admin)
- GET|POST|DELETE /api/storage?path= (writes admin)
- GET             /api/audit?entityId= (admin)
- GET             /health`

func (c *Controller) GetHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": homeMessage,
	})
}

func (c *Controller) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "degraded": c.degraded})
}

// GetAuditLog returns recent audit entries for ?entityId=.
func (c *Controller) GetAuditLog(ctx *gin.Context) {
	entityID, ok := requireQuery(ctx, "entityId")
	if !ok {
		return
	}
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid limit")
		return
	}
	entries, err := c.audit.Recent(ctx.Request.Context(), entityID, limit)
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch audit log", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, entries)
}

// MethodNotAllowed answers requests for a known path with an unsupported
// method.
func MethodNotAllowed(ctx *gin.Context) {
	sendErrorResponse(ctx, http.StatusMethodNotAllowed, "method not allowed")
}

func NotFound(ctx *gin.Context) {
	sendErrorResponse(ctx, http.StatusNotFound, "not found")
}
