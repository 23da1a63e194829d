package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/checkout"
	"github.com/sareecustoms/storefront-api/models"
)

// CartSessionHeader carries the id of the caller's cart session.
const CartSessionHeader = "X-Cart-Session"

type cartView struct {
	Items    []models.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{Items: c.Items(), Count: c.Count(), Subtotal: c.Subtotal()}
}

// sessionCart restores the cart of the session named in the request header,
// or writes a 400 when there is none.
func (c *Controller) sessionCart(ctx *gin.Context) (*cart.Cart, bool) {
	session := ctx.GetHeader(CartSessionHeader)
	if session == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing "+CartSessionHeader+" header")
		return nil, false
	}
	return cart.New(ctx.Request.Context(), c.carts.Storage(session),
		cart.WithStockPolicy(c.policy), cart.WithLogger(c.log)), true
}

func (c *Controller) respondWithCartError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		c.respondWithError(ctx, message, err)
	}
}

func (c *Controller) GetCart(ctx *gin.Context) {
	sc, ok := c.sessionCart(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, viewOf(sc))
}

// CreateCartItem adds one unit of the product, merging with an existing
// line for it.
func (c *Controller) CreateCartItem(ctx *gin.Context) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing productId")
		return
	}
	sc, ok := c.sessionCart(ctx)
	if !ok {
		return
	}

	product, err := c.repos.Products.Get(ctx.Request.Context(), body.ProductID)
	if err != nil {
		c.respondWithError(ctx, "Product", err)
		return
	}
	if _, err := sc.AddItem(ctx.Request.Context(), *product); err != nil {
		c.respondWithCartError(ctx, "Unable to update cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, viewOf(sc))
}

func (c *Controller) UpdateCartItem(ctx *gin.Context) {
	var body struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.ItemID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing itemId")
		return
	}
	sc, ok := c.sessionCart(ctx)
	if !ok {
		return
	}
	if err := sc.UpdateQuantity(ctx.Request.Context(), body.ItemID, body.Quantity); err != nil {
		c.respondWithCartError(ctx, "Unable to update cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, viewOf(sc))
}

// DeleteCartItem removes ?itemId= from the cart, or empties the cart when no
// item is named.
func (c *Controller) DeleteCartItem(ctx *gin.Context) {
	sc, ok := c.sessionCart(ctx)
	if !ok {
		return
	}
	var err error
	if itemID := ctx.Query("itemId"); itemID != "" {
		err = sc.RemoveItem(ctx.Request.Context(), itemID)
	} else {
		err = sc.Clear(ctx.Request.Context())
	}
	if err != nil {
		c.respondWithCartError(ctx, "Unable to update cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, viewOf(sc))
}

type checkoutRequest struct {
	UserID          string `json:"userId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	Customization   string `json:"customization"`
}

// CheckoutCart turns the session cart into an order and empties the cart.
func (c *Controller) CheckoutCart(ctx *gin.Context) {
	var body checkoutRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	sc, ok := c.sessionCart(ctx)
	if !ok {
		return
	}

	order, err := checkout.Submit(ctx.Request.Context(), sc, checkout.Details{
		UserID:        body.UserID,
		Name:          body.CustomerName,
		Email:         body.CustomerEmail,
		Phone:         body.CustomerPhone,
		Address:       body.ShippingAddress,
		Customization: body.Customization,
	}, c.repos.Orders)
	if order != nil {
		c.notifier.OrderPlaced(*order)
	}
	if err != nil && order == nil {
		c.respondWithCartError(ctx, "Failed to place order", err)
		return
	}
	if err != nil {
		c.log.Warn("Order placed but cart not cleared", zap.String("order_id", order.ID), zap.Error(err))
	}
	sendSuccess(ctx, gin.H{"id": order.ID, "order": order})
}
