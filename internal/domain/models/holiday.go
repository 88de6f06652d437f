// internal/domain/models/holiday.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Holiday is a named break spanning an inclusive civil date range
// (public holiday, school vacation). Assignments with SkipHolidays set
// are not due on any date inside the range. Single-day holidays use
// the same start and end date.
type Holiday struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	StartDate string             `bson:"start_date" json:"start_date"`
	EndDate   string             `bson:"end_date" json:"end_date"`
}
