// internal/app/store/refrigerators/store.go
package refrigerators

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("refrigerators")}
}

// Create inserts a new refrigerator.
func (s *Store) Create(ctx context.Context, r models.Refrigerator) (models.Refrigerator, error) {
	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return r, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return r, nil
}

// GetByID returns a single refrigerator by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Refrigerator, error) {
	var r models.Refrigerator
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	return r, err
}

// Update replaces an existing refrigerator identified by its _id.
func (s *Store) Update(ctx context.Context, r models.Refrigerator) (models.Refrigerator, error) {
	if r.ID.IsZero() {
		return r, mongo.ErrNilDocument
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	return r, err
}

// Delete removes the refrigerator with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns all refrigerators.
func (s *Store) ListAll(ctx context.Context) ([]models.Refrigerator, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Refrigerator
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFacility returns a facility's refrigerators.
func (s *Store) ListByFacility(ctx context.Context, facilityID string) ([]models.Refrigerator, error) {
	cur, err := s.c.Find(ctx, bson.M{"facility_id": facilityID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Refrigerator
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
