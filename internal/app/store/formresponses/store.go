// internal/app/store/formresponses/store.go
package formresponses

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("form_responses")}
}

// Create inserts a new response. Responses are append-only. If
// Timestamp is zero, it will be set to now (UTC).
func (s *Store) Create(ctx context.Context, r models.FormResponse) (models.FormResponse, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return r, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return r, nil
}

// GetByIdempotencyKey returns the response previously created with the
// given key, or mongo.ErrNoDocuments.
func (s *Store) GetByIdempotencyKey(ctx context.Context, key string) (models.FormResponse, error) {
	var r models.FormResponse
	err := s.c.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&r)
	return r, err
}

// ListBetween returns responses with timestamps in [from, to), newest
// first.
func (s *Store) ListBetween(ctx context.Context, from, to time.Time) ([]models.FormResponse, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.FormResponse
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByForm returns all responses to a form, newest first.
func (s *Store) ListByForm(ctx context.Context, formID string) ([]models.FormResponse, error) {
	cur, err := s.c.Find(ctx, bson.M{"form_id": formID},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.FormResponse
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
