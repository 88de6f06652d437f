// internal/app/store/facilities/store.go
package facilities

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("facilities")}
}

// Create inserts a new facility. If CreatedAt is zero, it will be set
// to now (UTC).
func (s *Store) Create(ctx context.Context, f models.Facility) (models.Facility, error) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, f)
	if err != nil {
		return f, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return f, nil
}

// GetByID returns a single facility by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Facility, error) {
	var f models.Facility
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	return f, err
}

// Update replaces an existing facility identified by its _id.
func (s *Store) Update(ctx context.Context, f models.Facility) (models.Facility, error) {
	if f.ID.IsZero() {
		return f, mongo.ErrNilDocument
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	return f, err
}

// Delete removes the facility with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns all facilities.
func (s *Store) ListAll(ctx context.Context) ([]models.Facility, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Facility
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByType returns the facilities of one facility type.
func (s *Store) ListByType(ctx context.Context, typeID string) ([]models.Facility, error) {
	cur, err := s.c.Find(ctx, bson.M{"type_id": typeID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Facility
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
