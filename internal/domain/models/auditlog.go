// internal/domain/models/auditlog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry records one administrative write: who changed what, when.
type AuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Action    string             `bson:"action" json:"action"`
	Entity    string             `bson:"entity" json:"entity"`
	EntityID  string             `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
