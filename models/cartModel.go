package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a session cart. Product is a snapshot taken when
// the line was created and is not refreshed by later catalog edits.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"addedAt"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
