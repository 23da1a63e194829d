package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sareecustoms/storefront-api/models"
)

// table keeps rows in insertion order. Replacing a row keeps its position.
type table[T any] struct {
	mu   sync.RWMutex
	rows []T
	key  func(T) string
}

func newTable[T any](key func(T) string) *table[T] {
	return &table[T]{key: key}
}

func (t *table[T]) find(id string) int {
	for i, row := range t.rows {
		if t.key(row) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.find(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

// put stores row and hands the previous value, if any, to merge first.
func (t *table[T]) put(row T, merge func(prev T, next *T)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.find(t.key(row)); i >= 0 {
		if merge != nil {
			merge(t.rows[i], &row)
		}
		t.rows[i] = row
		return
	}
	t.rows = append(t.rows, row)
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

func (t *table[T]) update(id string, fn func(*T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(id)
	if i < 0 {
		return false
	}
	fn(&t.rows[i])
	return true
}

// newestFirst returns the rows matching keep in reverse insertion order.
func (t *table[T]) newestFirst(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for i := len(t.rows) - 1; i >= 0; i-- {
		if keep == nil || keep(t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

// NewMemoryRepositories returns empty in-process stores. admins are the uids
// reported as administrators.
func NewMemoryRepositories(admins ...string) *Repositories {
	return &Repositories{
		Products: NewMemoryProducts(),
		Tags:     NewMemoryTags(),
		Orders:   NewMemoryOrders(),
		Users:    NewMemoryUsers(),
		Admins:   NewMemoryAdmins(admins...),
		Feedback: NewMemoryFeedback(),
		Contact:  NewMemoryContact(),
	}
}

type MemoryProducts struct {
	rows *table[models.Product]
	now  func() time.Time
}

// NewMemoryProducts seeds the store with products listed newest first, the
// order List returns them in.
func NewMemoryProducts(seed ...models.Product) *MemoryProducts {
	m := &MemoryProducts{
		rows: newTable(func(p models.Product) string { return p.ID }),
		now:  time.Now,
	}
	for i := len(seed) - 1; i >= 0; i-- {
		m.rows.put(seed[i].Snapshot(), nil)
	}
	return m
}

func (m *MemoryProducts) List(context.Context) ([]models.Product, error) {
	products := m.rows.newestFirst(nil)
	for i := range products {
		products[i] = products[i].Snapshot()
	}
	return products, nil
}

func (m *MemoryProducts) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	p = p.Snapshot()
	return &p, nil
}

func (m *MemoryProducts) Upsert(_ context.Context, p *models.Product) error {
	ensureID(&p.ID)
	now := m.now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Tags = nil
	m.rows.put(p.Snapshot(), func(prev models.Product, next *models.Product) {
		next.CreatedAt = prev.CreatedAt
	})
	return nil
}

func (m *MemoryProducts) Delete(_ context.Context, id string) error {
	if !m.rows.remove(id) {
		return ErrNotFound
	}
	return nil
}

type MemoryTags struct {
	rows *table[models.Tag]
	now  func() time.Time
}

func NewMemoryTags(seed ...models.Tag) *MemoryTags {
	m := &MemoryTags{
		rows: newTable(func(t models.Tag) string { return t.ID }),
		now:  time.Now,
	}
	for _, t := range seed {
		m.rows.put(t, nil)
	}
	return m
}

func (m *MemoryTags) List(context.Context) ([]models.Tag, error) {
	tags := m.rows.newestFirst(nil)
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

func (m *MemoryTags) Upsert(_ context.Context, t *models.Tag) error {
	ensureID(&t.ID)
	t.CreatedAt = m.now()
	m.rows.put(*t, func(prev models.Tag, next *models.Tag) {
		next.CreatedAt = prev.CreatedAt
	})
	return nil
}

func (m *MemoryTags) Delete(_ context.Context, id string) error {
	if !m.rows.remove(id) {
		return ErrNotFound
	}
	return nil
}

type MemoryOrders struct {
	rows *table[models.Order]
	now  func() time.Time
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{
		rows: newTable(func(o models.Order) string { return o.ID }),
		now:  time.Now,
	}
}

func (m *MemoryOrders) List(_ context.Context, userID string) ([]models.Order, error) {
	var keep func(models.Order) bool
	if userID != "" {
		keep = func(o models.Order) bool { return o.UserID == userID }
	}
	orders := m.rows.newestFirst(keep)
	for i := range orders {
		orders[i].Items = append([]models.OrderItem{}, orders[i].Items...)
	}
	return orders, nil
}

func (m *MemoryOrders) CreateOrder(_ context.Context, o *models.Order) (string, error) {
	ensureID(&o.ID)
	now := m.now()
	o.CreatedAt, o.UpdatedAt = now, now
	stored := *o
	stored.Items = append([]models.OrderItem{}, o.Items...)
	m.rows.put(stored, nil)
	return o.ID, nil
}

func (m *MemoryOrders) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	now := m.now()
	ok := m.rows.update(id, func(o *models.Order) {
		o.Status = status
		o.UpdatedAt = now
	})
	if !ok {
		return ErrNotFound
	}
	return nil
}

type MemoryUsers struct {
	rows *table[models.User]
	now  func() time.Time
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		rows: newTable(func(u models.User) string { return u.ID }),
		now:  time.Now,
	}
}

func (m *MemoryUsers) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := m.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryUsers) Upsert(_ context.Context, u *models.User) error {
	now := m.now()
	u.CreatedAt, u.UpdatedAt = now, now
	m.rows.put(*u, func(prev models.User, next *models.User) {
		next.CreatedAt = prev.CreatedAt
	})
	return nil
}

type MemoryAdmins struct {
	mu   sync.RWMutex
	uids map[string]bool
}

func NewMemoryAdmins(uids ...string) *MemoryAdmins {
	m := &MemoryAdmins{uids: make(map[string]bool, len(uids))}
	for _, uid := range uids {
		m.uids[uid] = true
	}
	return m
}

func (m *MemoryAdmins) IsAdmin(_ context.Context, uid string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uids[uid], nil
}

type MemoryFeedback struct {
	rows *table[models.Feedback]
	now  func() time.Time
}

func NewMemoryFeedback() *MemoryFeedback {
	return &MemoryFeedback{
		rows: newTable(func(f models.Feedback) string { return f.ID }),
		now:  time.Now,
	}
}

func (m *MemoryFeedback) List(context.Context) ([]models.Feedback, error) {
	return m.rows.newestFirst(nil), nil
}

func (m *MemoryFeedback) Create(_ context.Context, f *models.Feedback) error {
	ensureID(&f.ID)
	f.CreatedAt = m.now()
	m.rows.put(*f, nil)
	return nil
}

type MemoryContact struct {
	rows *table[models.ContactMessage]
	now  func() time.Time
}

func NewMemoryContact() *MemoryContact {
	return &MemoryContact{
		rows: newTable(func(c models.ContactMessage) string { return c.ID }),
		now:  time.Now,
	}
}

func (m *MemoryContact) List(context.Context) ([]models.ContactMessage, error) {
	return m.rows.newestFirst(nil), nil
}

func (m *MemoryContact) Create(_ context.Context, c *models.ContactMessage) error {
	ensureID(&c.ID)
	c.CreatedAt = m.now()
	m.rows.put(*c, nil)
	return nil
}
