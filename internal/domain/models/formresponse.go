// internal/domain/models/formresponse.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormResponse records one completed checklist. Like readings it is
// append-only; a form counts as done for a calendar date when a
// response with a matching form_id exists for that date (matched by
// user for user-targeted assignments, by facility otherwise).
type FormResponse struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormID     string             `bson:"form_id" json:"form_id"`
	FacilityID string             `bson:"facility_id" json:"facility_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Answers    map[string]string  `bson:"answers" json:"answers"`

	// Signature is an opaque data URL captured on forms that require
	// one. Stored as-is; rendering is not this service's concern.
	Signature string `bson:"signature,omitempty" json:"signature,omitempty"`

	IdempotencyKey string `bson:"idempotency_key,omitempty" json:"idempotency_key,omitempty"`
}
