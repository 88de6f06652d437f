// internal/app/store/assignments/store.go
package assignments

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
	return &Store{c: db.Collection("assignments")}
}

// Create inserts a new assignment document.
//
// The caller is responsible for setting the target and resource fields.
// If ID is zero, a new ObjectID will be assigned. If CreatedAt is zero,
// it will be set to now (UTC).
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	now := time.Now().UTC()

	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		return a, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single assignment by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// Update replaces an existing assignment identified by its _id.
//
// The caller must provide a.ID. UpdatedAt will be set to now (UTC).
func (s *Store) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.ID.IsZero() {
		return a, mongo.ErrNilDocument
	}

	now := time.Now().UTC()
	a.UpdatedAt = &now

	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return a, err
}

// Delete removes the assignment with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns all assignments.
func (s *Store) ListAll(ctx context.Context) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveOn returns the assignments whose inclusive date range
// contains the given civil date. Skip flags are not applied here; the
// worklist builder owns that rule.
func (s *Store) ListActiveOn(ctx context.Context, date string) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"start_date": bson.M{"$lte": date},
		"end_date":   bson.M{"$gte": date},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByResource returns all assignments scheduling the given resource.
func (s *Store) ListByResource(ctx context.Context, resourceType, resourceID string) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"resource_type": resourceType, "resource_id": resourceID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByResource removes all assignments for a resource.
// Returns the number of documents deleted.
func (s *Store) DeleteByResource(ctx context.Context, resourceType, resourceID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"resource_type": resourceType, "resource_id": resourceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
