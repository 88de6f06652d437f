// internal/domain/models/alert.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert is derived from a violating Reading. It is created unresolved,
// may be marked resolved by an administrator, and is never deleted.
// The alert document is the durable record of a violation regardless
// of whether any notification delivery succeeded.
type Alert struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacilityID     string             `bson:"facility_id" json:"facility_id"`
	FacilityName   string             `bson:"facility_name" json:"facility_name"`
	TargetName     string             `bson:"target_name" json:"target_name"`
	CheckpointName string             `bson:"checkpoint_name" json:"checkpoint_name"`
	Value          float64            `bson:"value" json:"value"`
	Min            float64            `bson:"min" json:"min"`
	Max            float64            `bson:"max" json:"max"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
	UserID         string             `bson:"user_id" json:"user_id"`
	UserName       string             `bson:"user_name" json:"user_name"`
	Resolved       bool               `bson:"resolved" json:"resolved"`
	ResolvedAt     *time.Time         `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
