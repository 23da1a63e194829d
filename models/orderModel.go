package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusCompleted:
		return OrderStatusCompleted, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OrderItem is a point-in-time copy of a cart line.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type Order struct {
	ID              string                         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string                         `gorm:"type:varchar(128);index" json:"userId"`
	CustomerName    string                         `gorm:"type:varchar(200);not null" json:"customerName"`
	CustomerEmail   string                         `gorm:"type:varchar(200)" json:"customerEmail"`
	CustomerPhone   string                         `gorm:"type:varchar(40);not null" json:"customerPhone"`
	ShippingAddress string                         `gorm:"type:text;not null" json:"shippingAddress"`
	Customization   string                         `gorm:"type:text" json:"customization"`
	Items           datatypes.JSONSlice[OrderItem] `json:"items"`
	TotalAmount     decimal.Decimal                `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Status          OrderStatus                    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time                      `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// ComputeTotal sums quantity × price over the item snapshot.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (o *Order) Validate() error {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.CustomerPhone = strings.TrimSpace(o.CustomerPhone)
	o.ShippingAddress = strings.TrimSpace(o.ShippingAddress)

	switch {
	case o.CustomerName == "":
		return invalid("customerName", "name is required")
	case o.CustomerPhone == "":
		return invalid("customerPhone", "phone is required")
	case o.ShippingAddress == "":
		return invalid("shippingAddress", "address is required")
	case len(o.Items) == 0:
		return invalid("items", "order has no items")
	}

	for i, item := range o.Items {
		if item.Quantity < 1 {
			return invalid(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return invalid(fmt.Sprintf("items[%d].price", i), "price cannot be negative")
		}
	}

	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}
