// internal/app/store/menus/store.go
package menus

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
	return &Store{c: db.Collection("menus")}
}

// Create inserts a new menu. If CreatedAt is zero, it will be set to
// now (UTC).
func (s *Store) Create(ctx context.Context, m models.Menu) (models.Menu, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, m)
	if err != nil {
		return m, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

// GetByID returns a single menu by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Menu, error) {
	var m models.Menu
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

// Update replaces an existing menu identified by its _id.
func (s *Store) Update(ctx context.Context, m models.Menu) (models.Menu, error) {
	if m.ID.IsZero() {
		return m, mongo.ErrNilDocument
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	return m, err
}

// Delete removes the menu with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns all menus.
func (s *Store) ListAll(ctx context.Context) ([]models.Menu, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Menu
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
