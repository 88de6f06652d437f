// internal/app/store/readings/store.go
package readings

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
	return &Store{c: db.Collection("readings")}
}

// Create inserts a new reading. Readings are append-only; there is no
// update or delete. If Timestamp is zero, it will be set to now (UTC).
func (s *Store) Create(ctx context.Context, r models.Reading) (models.Reading, error) {
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

// GetByIdempotencyKey returns the reading previously created with the
// given key, or mongo.ErrNoDocuments.
func (s *Store) GetByIdempotencyKey(ctx context.Context, key string) (models.Reading, error) {
	var r models.Reading
	err := s.c.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&r)
	return r, err
}

// ListBetween returns readings with timestamps in [from, to), newest
// first.
func (s *Store) ListBetween(ctx context.Context, from, to time.Time) ([]models.Reading, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Reading
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFacilityBetween returns a facility's readings with timestamps
// in [from, to), newest first.
func (s *Store) ListByFacilityBetween(ctx context.Context, facilityID string, from, to time.Time) ([]models.Reading, error) {
	cur, err := s.c.Find(ctx,
		bson.M{
			"facility_id": facilityID,
			"timestamp":   bson.M{"$gte": from, "$lt": to},
		},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Reading
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByTarget returns all readings for one monitored target, newest
// first, capped at limit (0 means no cap).
func (s *Store) ListByTarget(ctx context.Context, targetType, targetID string, limit int64) ([]models.Reading, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"target_type": targetType, "target_id": targetID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Reading
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
