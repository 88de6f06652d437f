// internal/app/store/outbox/store.go
package outbox

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
	return &Store{c: db.Collection("outbox")}
}

// Enqueue inserts pending entries. Entries whose token already exists
// are silently skipped; the unique token index makes re-enqueueing the
// same fan-out a no-op instead of a duplicate send.
func (s *Store) Enqueue(ctx context.Context, entries []models.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		docs = append(docs, entries[i])
	}
	_, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// ListPending returns up to limit pending entries, oldest first.
func (s *Store) ListPending(ctx context.Context, limit int64) ([]models.OutboxEntry, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"status": models.OutboxPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.OutboxEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDone records the single delivery attempt for an entry. Failed
// attempts are marked done too; delivery is one-shot and the error is
// kept on the entry for operators.
func (s *Store) MarkDone(ctx context.Context, id primitive.ObjectID, attemptErr error) error {
	now := time.Now().UTC()
	set := bson.M{
		"status":  models.OutboxDone,
		"sent_at": now,
	}
	if attemptErr != nil {
		set["last_error"] = attemptErr.Error()
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// GetByToken returns the entry with the given token, or
// mongo.ErrNoDocuments.
func (s *Store) GetByToken(ctx context.Context, token string) (models.OutboxEntry, error) {
	var e models.OutboxEntry
	err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&e)
	return e, err
}

// CountPending returns the number of entries awaiting dispatch.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.OutboxPending})
}
