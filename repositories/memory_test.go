package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sareecustoms/storefront-api/models"
)

func TestMemoryProductsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProducts()

	p := &models.Product{Name: "Banarasi", Price: decimal.NewFromInt(8000), Fabric: "Silk"}
	require.NoError(t, repo.Upsert(ctx, p))
	require.NotEmpty(t, p.ID)
	created := p.CreatedAt

	repo.now = func() time.Time { return created.Add(time.Minute) }
	update := &models.Product{ID: p.ID, Name: "Banarasi Silk", Price: decimal.NewFromInt(9000)}
	require.NoError(t, repo.Upsert(ctx, update))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Banarasi Silk", products[0].Name)
	assert.Equal(t, "", products[0].Fabric)
	assert.True(t, products[0].CreatedAt.Equal(created))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(9000)))
}

func TestMemoryProductsNewestFirstAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProducts(PlaceholderProducts()...)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)

	require.NoError(t, repo.Upsert(ctx, &models.Product{ID: "p3", Name: "Chiffon"}))
	products, _ = repo.List(ctx)
	assert.Equal(t, "p3", products[0].ID)

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), ErrNotFound)
	_, err = repo.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductsReturnCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProducts(PlaceholderProducts()...)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	got.Images[0] = "changed"

	again, _ := repo.Get(ctx, "p1")
	assert.Equal(t, "https://placehold.co/600x400", again.Images[0])
}

func TestMemoryTagsOrderedByName(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTags(PlaceholderTags()...)
	require.NoError(t, repo.Upsert(ctx, &models.Tag{Name: "Banarasi", Category: models.TagCategoryStyle}))

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.Equal(t, []string{"Banarasi", "Cotton", "Silk"}, names)
	assert.NotEmpty(t, tags[0].ID)
}

func TestMemoryOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrders()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := &models.Order{UserID: "u1", CustomerName: "A", Items: []models.OrderItem{{ProductID: "p1", Quantity: 1}}}
	second := &models.Order{UserID: "u2", CustomerName: "B"}
	third := &models.Order{UserID: "u1", CustomerName: "C"}
	for _, o := range []*models.Order{first, second, third} {
		id, err := repo.CreateOrder(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, o.ID, id)
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)

	mine, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, []string{third.ID, first.ID}, []string{mine[0].ID, mine[1].ID})

	first.Items[0].Quantity = 9
	mine, _ = repo.List(ctx, "u1")
	assert.Equal(t, 1, mine[1].Items[0].Quantity)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, models.OrderStatusCompleted))
	mine, _ = repo.List(ctx, "u1")
	assert.Equal(t, models.OrderStatusCompleted, mine[1].Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.OrderStatusCancelled), ErrNotFound)
}

func TestMemoryUsersAndAdmins(t *testing.T) {
	ctx := context.Background()
	repos := NewPlaceholderRepositories()

	_, err := repos.Users.Get(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repos.Users.Upsert(ctx, &models.User{ID: "uid-1", Name: "Meera"}))
	require.NoError(t, repos.Users.Upsert(ctx, &models.User{ID: "uid-1", Name: "Meera K"}))
	u, err := repos.Users.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Meera K", u.Name)

	ok, err := repos.Admins.IsAdmin(ctx, PlaceholderAdminID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = repos.Admins.IsAdmin(ctx, "uid-1")
	assert.False(t, ok)
}

func TestMemoryFeedbackNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFeedback()
	require.NoError(t, repo.Create(ctx, &models.Feedback{Rating: 4, Suggestion: "more colors"}))
	require.NoError(t, repo.Create(ctx, &models.Feedback{Rating: 5}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 5, all[0].Rating)
	assert.NotEqual(t, all[0].ID, all[1].ID)
}
