// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Audit actions.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionResolve = "resolve"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_log")}
}

// Append records one audit entry. If Timestamp is zero, it will be set
// to now (UTC).
func (s *Store) Append(ctx context.Context, e models.AuditEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// List returns audit entries newest first, capped at limit (0 means a
// default cap of 500).
func (s *Store) List(ctx context.Context, limit int64) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 500
	}
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.AuditEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEntity returns the audit trail for one entity, newest first.
func (s *Store) ListByEntity(ctx context.Context, entity, entityID string) ([]models.AuditEntry, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"entity": entity, "entity_id": entityID},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.AuditEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
