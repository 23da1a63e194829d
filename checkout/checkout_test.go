package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/models"
)

type recordingSubmitter struct {
	orders []*models.Order
	err    error
}

func (r *recordingSubmitter) CreateOrder(_ context.Context, o *models.Order) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.orders = append(r.orders, o)
	return "order-1", nil
}

var details = Details{
	UserID:  "uid-7",
	Name:    "  Meera  ",
	Email:   "meera@example.com",
	Phone:   "+91 90000 00000",
	Address: "12 Temple Street, Chennai",
}

func silk() models.Product {
	return models.Product{
		ID: "p1", Name: "Premium Kanchipuram Silk", Price: decimal.NewFromInt(15000), Stock: 1,
		Images: datatypes.JSONSlice[string]{"https://cdn.example.com/p1.jpg", "https://cdn.example.com/p1b.jpg"},
	}
}

func cotton() models.Product {
	return models.Product{ID: "p2", Name: "Soft Cotton Daily Wear", Price: decimal.NewFromInt(2000), Stock: 10}
}

func filledCart(t *testing.T, opts ...cart.Option) *cart.Cart {
	t.Helper()
	ctx := context.Background()
	c := cart.New(ctx, &cart.MemoryStorage{}, opts...)
	_, err := c.AddItem(ctx, silk())
	require.NoError(t, err)
	_, err = c.AddItem(ctx, cotton())
	require.NoError(t, err)
	_, err = c.AddItem(ctx, cotton())
	require.NoError(t, err)
	return c
}

func TestSubmitClearsCart(t *testing.T) {
	c := filledCart(t)
	sub := &recordingSubmitter{}

	order, err := Submit(context.Background(), c, details, sub)
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
	require.Len(t, sub.orders, 1)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "Meera", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(19000)))

	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderItem{
		ProductID: "p1", ProductName: "Premium Kanchipuram Silk", Quantity: 1,
		Price: decimal.NewFromInt(15000), Image: "https://cdn.example.com/p1.jpg",
	}, order.Items[0])
	assert.Equal(t, "", order.Items[1].Image)
	assert.Equal(t, 2, order.Items[1].Quantity)
}

func TestFailedSubmitLeavesCart(t *testing.T) {
	c := filledCart(t)
	before := c.Items()

	_, err := Submit(context.Background(), c, details, &recordingSubmitter{err: errors.New("503")})
	require.Error(t, err)
	assert.Equal(t, before, c.Items())
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	c := cart.New(context.Background(), &cart.MemoryStorage{})
	sub := &recordingSubmitter{}

	_, err := Submit(context.Background(), c, details, sub)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, sub.orders)
}

func TestSubmitRequiresContactFields(t *testing.T) {
	for _, d := range []Details{
		{Phone: "1", Address: "a"},
		{Name: "n", Address: "a"},
		{Name: "n", Phone: "1", Address: "   "},
	} {
		c := filledCart(t)
		sub := &recordingSubmitter{}

		_, err := Submit(context.Background(), c, d, sub)
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Empty(t, sub.orders)
		assert.Equal(t, 2, c.Len())
	}
}

func TestSubmitChecksStockAtCheckout(t *testing.T) {
	c := filledCart(t, cart.WithStockPolicy(cart.StockPolicyAtCheckout))
	item := c.Items()[0]
	require.NoError(t, c.UpdateQuantity(context.Background(), item.ID, 3))

	sub := &recordingSubmitter{}
	_, err := Submit(context.Background(), c, details, sub)
	assert.ErrorIs(t, err, cart.ErrOutOfStock)
	assert.Empty(t, sub.orders)
	assert.False(t, c.IsEmpty())
}

func TestOrderSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	c := filledCart(t)
	sub := &recordingSubmitter{}

	order, err := Submit(ctx, c, details, sub)
	require.NoError(t, err)

	// A later cart session and a price change must not reach the stored order.
	p := silk()
	p.Price = decimal.NewFromInt(99)
	_, err = c.AddItem(ctx, p)
	require.NoError(t, err)

	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(15000)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(19000)))
}

func TestBuildOrderDoesNotAliasItems(t *testing.T) {
	items := filledCart(t).Items()
	order, err := BuildOrder(items, details)
	require.NoError(t, err)

	items[0].Product.Images[0] = "mutated.jpg"
	items[0].Quantity = 50
	assert.Equal(t, "https://cdn.example.com/p1.jpg", order.Items[0].Image)
	assert.Equal(t, 1, order.Items[0].Quantity)
}
