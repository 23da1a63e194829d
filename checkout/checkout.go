// Package checkout turns a cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/models"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// OrderSubmitter persists an order and returns its id.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
}

// Details are the shipping and contact fields collected at checkout.
type Details struct {
	UserID        string
	Name          string
	Email         string
	Phone         string
	Address       string
	Customization string
}

// BuildOrder freezes the cart lines into a pending order. The returned order
// shares no memory with items.
func BuildOrder(items []models.CartItem, d Details) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          strings.TrimSpace(d.UserID),
		CustomerName:    d.Name,
		CustomerEmail:   strings.TrimSpace(d.Email),
		CustomerPhone:   d.Phone,
		ShippingAddress: d.Address,
		Customization:   strings.TrimSpace(d.Customization),
		Items:           make([]models.OrderItem, 0, len(items)),
		Status:          models.OrderStatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Image:       item.Product.CoverImage(),
		})
	}
	order.TotalAmount = order.ComputeTotal()

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Submit sends one order built from c and clears c once the submitter has
// accepted it. A failed submission leaves the cart untouched. If the order is
// stored but the cart cannot be cleared, the order is returned together with
// the error.
func Submit(ctx context.Context, c *cart.Cart, d Details, submitter OrderSubmitter) (*models.Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if c.Policy() == cart.StockPolicyAtCheckout {
		if err := c.CheckStock(); err != nil {
			return nil, err
		}
	}

	order, err := BuildOrder(c.Items(), d)
	if err != nil {
		return nil, err
	}

	id, err := submitter.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	if id != "" {
		order.ID = id
	}

	if err := c.Clear(ctx); err != nil {
		return order, fmt.Errorf("order %s placed but cart not cleared: %w", order.ID, err)
	}
	return order, nil
}
