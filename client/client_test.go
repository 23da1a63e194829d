package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/catalog"
	"github.com/sareecustoms/storefront-api/checkout"
	"github.com/sareecustoms/storefront-api/controllers"
	"github.com/sareecustoms/storefront-api/models"
	"github.com/sareecustoms/storefront-api/repositories"
	"github.com/sareecustoms/storefront-api/routes"
)

func newAPI(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := gin.New()
	routes.Setup(server, controllers.New(controllers.Deps{Repos: repositories.NewPlaceholderRepositories()}))

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestListProductsAppliesCriteria(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	all, err := c.ListProducts(ctx, catalog.DefaultCriteria(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	criteria := catalog.DefaultCriteria()
	criteria.Fabrics.Add("Cotton")
	cotton, err := c.ListProducts(ctx, criteria, "")
	require.NoError(t, err)
	require.Len(t, cotton, 1)
	assert.Equal(t, "p2", cotton[0].ID)

	silk, err := c.ListProducts(ctx, catalog.DefaultCriteria(), "kanchipuram")
	require.NoError(t, err)
	require.Len(t, silk, 1)
	assert.Equal(t, "Silk", silk[0].Tags[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	c := newAPI(t)

	_, err := c.GetProduct(context.Background(), "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestCheckoutThroughClient(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	p, err := c.GetProduct(ctx, "p1")
	require.NoError(t, err)

	sc := cart.New(ctx, &cart.MemoryStorage{})
	_, err = sc.AddItem(ctx, *p)
	require.NoError(t, err)

	order, err := checkout.Submit(ctx, sc, checkout.Details{
		UserID: "uid-9", Name: "Anu", Phone: "98400 00000", Address: "Madurai",
	}, c)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.True(t, sc.IsEmpty())

	orders, err := c.ListOrders(ctx, "uid-9")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(15000)))
}

func TestCreateOrderValidationError(t *testing.T) {
	c := newAPI(t)

	_, err := c.CreateOrder(context.Background(), &checkoutlessOrder)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

var checkoutlessOrder = models.Order{CustomerName: "No items"}
