// internal/domain/models/menu.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu is a dish or meal line whose preparation is temperature
// checked. Its checkpoints come from the referenced cooking method.
type Menu struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	CookingMethodID string             `bson:"cooking_method_id" json:"cooking_method_id"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
