// internal/app/store/forms/store.go
package forms

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
	return &Store{c: db.Collection("form_templates")}
}

// Create inserts a new form template. If CreatedAt is zero, it will be
// set to now (UTC).
func (s *Store) Create(ctx context.Context, f models.FormTemplate) (models.FormTemplate, error) {
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

// GetByID returns a single form template by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.FormTemplate, error) {
	var f models.FormTemplate
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	return f, err
}

// Update replaces an existing form template identified by its _id.
func (s *Store) Update(ctx context.Context, f models.FormTemplate) (models.FormTemplate, error) {
	if f.ID.IsZero() {
		return f, mongo.ErrNilDocument
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	return f, err
}

// Delete removes the form template with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns all form templates.
func (s *Store) ListAll(ctx context.Context) ([]models.FormTemplate, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.FormTemplate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
