// internal/domain/models/outbox.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outbox entry kinds.
const (
	OutboxEmail    = "email"
	OutboxTelegram = "telegram"
)

// Outbox entry statuses. An entry moves pending -> done after exactly
// one delivery attempt, whether or not the attempt succeeded; failures
// are logged, not retried.
const (
	OutboxPending = "pending"
	OutboxDone    = "done"
)

// OutboxEntry is one queued notification. Token is unique per logical
// send so that re-enqueuing the same alert fan-out is a no-op.
type OutboxEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"token"`
	Kind      string             `bson:"kind" json:"kind"`
	Recipient string             `bson:"recipient,omitempty" json:"recipient,omitempty"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string             `bson:"body" json:"body"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	SentAt    *time.Time         `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	LastError string             `bson:"last_error,omitempty" json:"last_error,omitempty"`
}
