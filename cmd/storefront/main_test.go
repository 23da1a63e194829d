package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/controllers"
	"github.com/sareecustoms/storefront-api/repositories"
	"github.com/sareecustoms/storefront-api/routes"
)

type harness struct {
	apiURL   string
	cartPath string
	repos    *repositories.Repositories
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repos := repositories.NewPlaceholderRepositories()
	server := gin.New()
	routes.Setup(server, controllers.New(controllers.Deps{Repos: repos}))
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	return &harness{
		apiURL:   ts.URL,
		cartPath: filepath.Join(t.TempDir(), "cart.json"),
		repos:    repos,
	}
}

func (h *harness) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	base := []string{"--api", h.apiURL, "--cart", h.cartPath}
	err := run(context.Background(), append(base, args...), &out, &errOut)
	return out.String(), err
}

func (h *harness) cart(t *testing.T) *cart.Cart {
	t.Helper()
	return cart.New(context.Background(), cart.NewFileStorage(h.cartPath))
}

func TestProductsCommandFilters(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("products", "--fabric", "Cotton")
	require.NoError(t, err)
	assert.Contains(t, out, "Soft Cotton Daily Wear")
	assert.NotContains(t, out, "Kanchipuram")

	out, err = h.run("products", "-q", "kanchipuram")
	require.NoError(t, err)
	assert.Contains(t, out, "15000.00")
	assert.Contains(t, out, "Silk")

	_, err = h.run("products", "--min-price", "abc")
	assert.Error(t, err)
}

func TestTagsCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("tags")
	require.NoError(t, err)
	assert.Contains(t, out, "#8B0000")
	assert.Contains(t, out, "Cotton")
}

func TestCartCommandsPersistBetweenRuns(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "p1")
	require.NoError(t, err)
	out, err := h.run("cart", "add", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "30000.00")

	items := h.cart(t).Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	_, err = h.run("cart", "set", items[0].ID, "5")
	require.NoError(t, err)
	assert.Equal(t, 5, h.cart(t).Count())

	_, err = h.run("cart", "remove", items[0].ID)
	require.NoError(t, err)
	out, err = h.run("cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart is empty.")
}

func TestCartAddUnknownProduct(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "missing")
	assert.Error(t, err)
	assert.True(t, h.cart(t).IsEmpty())
}

func TestCartSetRejectsBadQuantity(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "set", "item", "many")
	assert.ErrorIs(t, err, errUsage)
}

func TestStockPolicyFlag(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "p1")
	require.NoError(t, err)
	items := h.cart(t).Items()
	require.Len(t, items, 1)

	_, err = h.run("--stock-policy", "add", "cart", "set", items[0].ID, "6")
	assert.ErrorIs(t, err, cart.ErrOutOfStock)

	_, err = h.run("--stock-policy", "sometimes", "cart")
	assert.Error(t, err)
}

func TestCheckoutCommand(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "p2")
	require.NoError(t, err)

	_, err = h.run("checkout", "--name", "Meera")
	assert.ErrorIs(t, err, errUsage)
	assert.False(t, h.cart(t).IsEmpty())

	out, err := h.run("checkout", "--name", "Meera", "--phone", "9000000000", "--address", "12 Temple Street", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "placed: 1 items, total 2000.00")
	assert.True(t, h.cart(t).IsEmpty())

	orders, err := h.repos.Orders.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Meera", orders[0].CustomerName)
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("checkout", "--name", "Meera", "--phone", "1", "--address", "x")
	assert.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("wishlist")
	assert.EqualError(t, err, `unknown command "wishlist"`)

	out, err := h.run()
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}
