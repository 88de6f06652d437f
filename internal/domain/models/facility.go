// internal/domain/models/facility.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Facility is a kitchen, a school, or any other site with food-safety
// duties. TypeID points at a FacilityType and is what facilityType
// assignments resolve through.
type Facility struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	TypeID    string             `bson:"type_id" json:"type_id"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// FacilityType is an administrator-defined category of facility
// (central kitchen, satellite kitchen, school).
type FacilityType struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}
