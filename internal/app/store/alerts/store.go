// internal/app/store/alerts/store.go
package alerts

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
	return &Store{c: db.Collection("alerts")}
}

// Create inserts a new alert. Alerts are created unresolved and never
// deleted. If Timestamp is zero, it will be set to now (UTC).
func (s *Store) Create(ctx context.Context, a models.Alert) (models.Alert, error) {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	a.Resolved = false

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		return a, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single alert by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Alert, error) {
	var a models.Alert
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// Resolve marks the alert resolved. Resolving an already resolved
// alert is a no-op, not an error.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"resolved":    true,
		"resolved_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns alerts newest first. When unresolvedOnly is set, only
// open alerts are returned.
func (s *Store) List(ctx context.Context, unresolvedOnly bool) ([]models.Alert, error) {
	filter := bson.M{}
	if unresolvedOnly {
		filter["resolved"] = false
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFacility returns a facility's alerts newest first.
func (s *Store) ListByFacility(ctx context.Context, facilityID string) ([]models.Alert, error) {
	cur, err := s.c.Find(ctx, bson.M{"facility_id": facilityID},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountUnresolved returns the number of open alerts.
func (s *Store) CountUnresolved(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"resolved": false})
}
