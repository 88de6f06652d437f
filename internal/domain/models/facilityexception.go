// internal/domain/models/facilityexception.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FacilityException is a named pause covering one or more facilities
// over an inclusive civil date range (renovation, seasonal closure).
// While one covers a facility and date, nothing at that facility is
// due, refrigerators included.
type FacilityException struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	FacilityIDs []string           `bson:"facility_ids" json:"facility_ids"`
	StartDate   string             `bson:"start_date" json:"start_date"`
	EndDate     string             `bson:"end_date" json:"end_date"`
}

// Covers reports whether the exception pauses the facility on the
// civil date.
func (e *FacilityException) Covers(facilityID, date string) bool {
	if date < e.StartDate || e.EndDate < date {
		return false
	}
	for _, id := range e.FacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}
