// internal/domain/models/reading.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading target kinds.
const (
	ReadingTargetRefrigerator = "refrigerator"
	ReadingTargetMenu         = "menu"
)

// Reading is an immutable measurement fact. Corrections are new
// readings; nothing ever updates or deletes one. A checkpoint counts
// as done for a calendar date when at least one reading with matching
// (target_id, target_type, checkpoint_name) carries a timestamp on
// that date.
type Reading struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TargetID       string             `bson:"target_id" json:"target_id"`
	TargetType     string             `bson:"target_type" json:"target_type"`
	CheckpointName string             `bson:"checkpoint_name" json:"checkpoint_name"`
	Value          float64            `bson:"value" json:"value"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
	UserID         string             `bson:"user_id" json:"user_id"`
	FacilityID     string             `bson:"facility_id" json:"facility_id"`

	// Reason is only present on out-of-range readings, where it is
	// mandatory at submission time.
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`

	// IdempotencyKey lets a client replay a submission (flaky kitchen
	// WiFi) without creating a second fact.
	IdempotencyKey string `bson:"idempotency_key,omitempty" json:"idempotency_key,omitempty"`
}
