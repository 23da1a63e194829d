package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/audit"
	"github.com/sareecustoms/storefront-api/models"
)

// GetOrders lists orders newest first, only the given user's when userId is
// set.
func (c *Controller) GetOrders(ctx *gin.Context) {
	orders, err := c.repos.Orders.List(ctx.Request.Context(), ctx.Query("userId"))
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch orders", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

// CreateOrder stores an order built by a client-side checkout. New orders are
// always pending under a server-assigned id, and the total is recomputed from
// the item snapshot.
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var order models.Order
	if err := ctx.ShouldBindJSON(&order); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	order.ID = ""
	order.Status = models.OrderStatusPending
	if err := order.Validate(); err != nil {
		c.respondWithError(ctx, "Invalid order", err)
		return
	}
	order.TotalAmount = order.ComputeTotal()

	id, err := c.repos.Orders.CreateOrder(ctx.Request.Context(), &order)
	if err != nil {
		c.respondWithError(ctx, "Failed to create order", err)
		return
	}
	c.notifier.OrderPlaced(order)
	sendSuccess(ctx, gin.H{"id": id})
}

func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		ID     string             `json:"id"`
		Status models.OrderStatus `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.ID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing id")
		return
	}
	if body.Status == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing status")
		return
	}

	if err := c.repos.Orders.UpdateStatus(ctx.Request.Context(), body.ID, body.Status); err != nil {
		c.respondWithError(ctx, "Order", err)
		return
	}
	c.record(ctx, audit.ActionOrderStatus, body.ID, map[string]any{"status": string(body.Status)})
	sendSuccess(ctx, nil)
}
