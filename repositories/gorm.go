package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sareecustoms/storefront-api/models"
)

// NewGormRepositories backs every store with db.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Products: &GormProducts{db: db},
		Tags:     &GormTags{db: db},
		Orders:   &GormOrders{db: db},
		Users:    &GormUsers{db: db},
		Admins:   &GormAdmins{db: db},
		Feedback: &GormFeedback{db: db},
		Contact:  &GormContact{db: db},
	}
}

func upsertOn(columns ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormProducts struct {
	db *gorm.DB
}

func (r *GormProducts) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *GormProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormProducts) Upsert(ctx context.Context, p *models.Product) error {
	ensureID(&p.ID)
	return r.db.WithContext(ctx).
		Clauses(upsertOn("name", "description", "price", "fabric", "color", "occasion",
			"style", "dress_type", "stock", "images", "featured", "updated_at")).
		Create(p).Error
}

func (r *GormProducts) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &models.Product{}, id)
}

type GormTags struct {
	db *gorm.DB
}

func (r *GormTags) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *GormTags) Upsert(ctx context.Context, t *models.Tag) error {
	ensureID(&t.ID)
	return r.db.WithContext(ctx).
		Clauses(upsertOn("name", "category", "color_hex")).
		Create(t).Error
}

func (r *GormTags) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &models.Tag{}, id)
}

type GormOrders struct {
	db *gorm.DB
}

func (r *GormOrders) List(ctx context.Context, userID string) ([]models.Order, error) {
	query := r.db.WithContext(ctx)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *GormOrders) CreateOrder(ctx context.Context, o *models.Order) (string, error) {
	ensureID(&o.ID)
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	return o.ID, nil
}

func (r *GormOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormUsers struct {
	db *gorm.DB
}

func (r *GormUsers) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *GormUsers) Upsert(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).
		Clauses(upsertOn("name", "email", "phone", "address", "updated_at")).
		Create(u).Error
}

type GormAdmins struct {
	db *gorm.DB
}

func (r *GormAdmins) IsAdmin(ctx context.Context, uid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Where("uid = ?", uid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type GormFeedback struct {
	db *gorm.DB
}

func (r *GormFeedback) List(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedback, nil
}

func (r *GormFeedback) Create(ctx context.Context, f *models.Feedback) error {
	ensureID(&f.ID)
	return r.db.WithContext(ctx).Create(f).Error
}

type GormContact struct {
	db *gorm.DB
}

func (r *GormContact) List(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}

func (r *GormContact) Create(ctx context.Context, m *models.ContactMessage) error {
	ensureID(&m.ID)
	return r.db.WithContext(ctx).Create(m).Error
}
