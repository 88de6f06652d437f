// internal/domain/models/form.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form question types.
const (
	QuestionText   = "text"
	QuestionChoice = "choice"
	QuestionYesNo  = "yesno"
)

// FormOption is one selectable answer for a choice question.
type FormOption struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// FormQuestion is a single question on a checklist form.
type FormQuestion struct {
	ID      string       `bson:"id" json:"id"`
	Text    string       `bson:"text" json:"text"`
	Type    string       `bson:"type" json:"type"`
	Options []FormOption `bson:"options,omitempty" json:"options,omitempty"`
}

// FormTemplate is an administrator-built checklist that assignments
// can schedule for users or facilities.
type FormTemplate struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	Questions         []FormQuestion     `bson:"questions" json:"questions"`
	RequiresSignature bool               `bson:"requires_signature" json:"requires_signature"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
