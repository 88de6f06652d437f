// internal/domain/models/refrigerator.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Refrigerator is a monitored cooling unit. Refrigerators are due
// every non-weekend day without any assignment; only a facility
// exception suppresses them.
type Refrigerator struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	FacilityID string             `bson:"facility_id" json:"facility_id"`
	TypeID     string             `bson:"type_id" json:"type_id"`
}
