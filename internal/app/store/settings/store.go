// internal/app/store/settings/store.go
package settings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("settings")}
}

// Get returns the singleton notification settings document. A missing
// document comes back as zero settings, not an error; blank settings
// just mean no channel is configured.
func (s *Store) Get(ctx context.Context) (models.NotificationSettings, error) {
	var out models.NotificationSettings
	err := s.c.FindOne(ctx, bson.M{"_id": models.SettingsGlobalID}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return models.NotificationSettings{ID: models.SettingsGlobalID}, nil
	}
	return out, err
}

// Put upserts the singleton settings document.
func (s *Store) Put(ctx context.Context, v models.NotificationSettings) error {
	v.ID = models.SettingsGlobalID
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": models.SettingsGlobalID}, v,
		options.Replace().SetUpsert(true))
	return err
}

// EnsureDefault inserts an empty settings document if none exists.
// Called at startup so the settings page always has something to edit.
func (s *Store) EnsureDefault(ctx context.Context) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": models.SettingsGlobalID},
		bson.M{"$setOnInsert": models.NotificationSettings{ID: models.SettingsGlobalID}},
		options.Update().SetUpsert(true))
	return err
}
