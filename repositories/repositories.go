// Package repositories persists the storefront entities. Each entity has a
// gorm implementation for MySQL and an in-memory one used in degraded mode
// and in tests.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sareecustoms/storefront-api/models"
)

var ErrNotFound = errors.New("record not found")

type ProductRepository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	// Upsert inserts p or replaces the stored row with the same id. An empty
	// id is filled in.
	Upsert(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

type TagRepository interface {
	// List returns every tag ordered by name.
	List(ctx context.Context) ([]models.Tag, error)
	Upsert(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	// List returns orders newest first, only those of userID when it is set.
	List(ctx context.Context, userID string) ([]models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) (string, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) error
}

type AdminRepository interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

type FeedbackRepository interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, f *models.Feedback) error
}

type ContactRepository interface {
	List(ctx context.Context) ([]models.ContactMessage, error)
	Create(ctx context.Context, m *models.ContactMessage) error
}

// Repositories bundles the stores the HTTP layer depends on.
type Repositories struct {
	Products ProductRepository
	Tags     TagRepository
	Orders   OrderRepository
	Users    UserRepository
	Admins   AdminRepository
	Feedback FeedbackRepository
	Contact  ContactRepository
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
