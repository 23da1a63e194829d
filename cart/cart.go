// Package cart holds a session's shopping cart and persists it after every
// change. A Cart belongs to one session and is not safe for concurrent use.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/models"
)

const stateVersion = 1

// ErrOutOfStock is returned when a quantity would exceed the product's stock
// under the cart's stock policy.
var ErrOutOfStock = errors.New("cart: quantity exceeds available stock")

// StockPolicy selects where quantities are checked against stock.
type StockPolicy int

const (
	// StockPolicyNone never checks stock.
	StockPolicyNone StockPolicy = iota
	// StockPolicyAtAdd rejects adds and quantity updates above stock.
	StockPolicyAtAdd
	// StockPolicyAtCheckout defers the check to order submission.
	StockPolicyAtCheckout
)

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch s {
	case "", "none":
		return StockPolicyNone, nil
	case "add":
		return StockPolicyAtAdd, nil
	case "checkout":
		return StockPolicyAtCheckout, nil
	}
	return StockPolicyNone, fmt.Errorf("unknown stock policy %q", s)
}

type state struct {
	Version int               `json:"version"`
	Items   []models.CartItem `json:"items"`
}

type Cart struct {
	storage Storage
	items   []models.CartItem
	policy  StockPolicy
	logger  *zap.Logger
	newID   func() string
	now     func() time.Time
}

type Option func(*Cart)

func WithStockPolicy(p StockPolicy) Option {
	return func(c *Cart) { c.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cart) { c.logger = l }
}

func withClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

// New restores the cart from storage. Missing state yields an empty cart, and
// so does state that cannot be decoded; the latter is logged and otherwise
// ignored.
func New(ctx context.Context, storage Storage, opts ...Option) *Cart {
	c := &Cart{
		storage: storage,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	data, err := storage.Load(ctx)
	if err != nil {
		c.logger.Warn("Failed to load cart, starting empty", zap.Error(err))
		return c
	}
	if len(data) == 0 {
		return c
	}

	items, err := decode(data)
	if err != nil {
		c.logger.Warn("Discarding unreadable cart state", zap.Error(err))
		return c
	}
	c.items = items
	return c
}

func decode(data []byte) ([]models.CartItem, error) {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != stateVersion {
		return nil, fmt.Errorf("unsupported cart state version %d", s.Version)
	}

	seen := make(map[string]bool, len(s.Items))
	for _, item := range s.Items {
		if item.ID == "" || item.ProductID == "" {
			return nil, errors.New("cart item without id")
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("cart item %s has quantity %d", item.ID, item.Quantity)
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("duplicate cart line for product %s", item.ProductID)
		}
		seen[item.ProductID] = true
	}
	return s.Items, nil
}

func (c *Cart) Policy() StockPolicy {
	return c.policy
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	for i, item := range c.items {
		item.Product = item.Product.Snapshot()
		out[i] = item
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Subtotal is recomputed from the line snapshots on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) indexOf(match func(models.CartItem) bool) int {
	for i, item := range c.items {
		if match(item) {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of p, merging into the existing line for p.ID.
func (c *Cart) AddItem(ctx context.Context, p models.Product) (models.CartItem, error) {
	if i := c.indexOf(func(it models.CartItem) bool { return it.ProductID == p.ID }); i >= 0 {
		next := c.items[i].Quantity + 1
		if c.policy == StockPolicyAtAdd && next > c.items[i].Product.Stock {
			return c.items[i], fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		c.items[i].Quantity = next
		return c.items[i], c.save(ctx)
	}

	if c.policy == StockPolicyAtAdd && p.Stock < 1 {
		return models.CartItem{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}

	item := models.CartItem{
		ID:        c.newID(),
		ProductID: p.ID,
		Quantity:  1,
		Product:   p.Snapshot(),
		AddedAt:   c.now(),
	}
	c.items = append(c.items, item)
	return item, c.save(ctx)
}

// UpdateQuantity sets the line's quantity to q. Values below one and unknown
// item ids are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, q int) error {
	if q < 1 {
		return nil
	}
	i := c.indexOf(func(it models.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return nil
	}
	if c.policy == StockPolicyAtAdd && q > c.items[i].Product.Stock {
		return fmt.Errorf("%w: %s", ErrOutOfStock, c.items[i].Product.Name)
	}
	c.items[i].Quantity = q
	return c.save(ctx)
}

// RemoveItem deletes the line whatever its quantity.
func (c *Cart) RemoveItem(ctx context.Context, itemID string) error {
	i := c.indexOf(func(it models.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return c.save(ctx)
}

func (c *Cart) Clear(ctx context.Context) error {
	c.items = nil
	return c.save(ctx)
}

// CheckStock returns ErrOutOfStock for the first line above its snapshot
// stock.
func (c *Cart) CheckStock() error {
	for _, item := range c.items {
		if item.Quantity > item.Product.Stock {
			return fmt.Errorf("%w: %s", ErrOutOfStock, item.Product.Name)
		}
	}
	return nil
}

func (c *Cart) save(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(state{Version: stateVersion, Items: items})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.storage.Save(ctx, data); err != nil {
		c.logger.Error("Failed to persist cart", zap.Error(err))
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
