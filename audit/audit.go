// Package audit records administrative changes to the catalog and orders.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Action string

const (
	ActionProductUpsert Action = "product.upsert"
	ActionProductDelete Action = "product.delete"
	ActionTagUpsert     Action = "tag.upsert"
	ActionTagDelete     Action = "tag.delete"
	ActionOrderStatus   Action = "order.status"
)

type Entry struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Action    Action    `bson:"action" json:"action"`
	EntityID  string    `bson:"entity_id" json:"entityId"`
	ActorID   string    `bson:"actor_id" json:"actorId"`
	Data      bson.M    `bson:"data" json:"data"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type Logger interface {
	Record(ctx context.Context, e *Entry) error
	// Recent returns up to limit entries for entityID, newest first.
	Recent(ctx context.Context, entityID string, limit int64) ([]Entry, error)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, *Entry) error { return nil }

func (Nop) Recent(context.Context, string, int64) ([]Entry, error) { return []Entry{}, nil }

// Memory keeps entries in process, newest last.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Record(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.CreatedAt = time.Now()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *Memory) Recent(_ context.Context, entityID string, limit int64) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Entry{}
	for i := len(m.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if m.entries[i].EntityID == entityID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// MongoLog writes entries to a MongoDB collection.
type MongoLog struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoLog(ctx context.Context, uri, database, collection string) (*MongoLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoLog{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (m *MongoLog) Record(ctx context.Context, e *Entry) error {
	e.CreatedAt = time.Now()
	_, err := m.collection.InsertOne(ctx, e)
	return err
}

func (m *MongoLog) Recent(ctx context.Context, entityID string, limit int64) ([]Entry, error) {
	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MongoLog) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
