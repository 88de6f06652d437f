// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment target kinds. An assignment binds exactly one target to
// exactly one resource over an inclusive date range.
const (
	TargetUser         = "user"
	TargetFacility     = "facility"
	TargetFacilityType = "facilityType"
)

// Assignment resource kinds.
const (
	ResourceForm = "form"
	ResourceMenu = "menu"
)

// Assignment frequencies. Frequency is recorded for reporting but does
// not gate the due-today computation; the date range plus the skip
// flags is the whole test.
const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Assignment schedules a form or menu check for a user, a facility, or
// every facility of a given type.
//
// StartDate and EndDate are civil dates ("2006-01-02", no time
// component); both ends are inclusive. SkipWeekend and SkipHolidays
// only ever remove days from the range, never add days outside it.
type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TargetType   string             `bson:"target_type" json:"target_type"`
	TargetID     string             `bson:"target_id" json:"target_id"`
	ResourceType string             `bson:"resource_type" json:"resource_type"`
	ResourceID   string             `bson:"resource_id" json:"resource_id"`

	Frequency    string `bson:"frequency" json:"frequency"`
	FrequencyDay int    `bson:"frequency_day,omitempty" json:"frequency_day,omitempty"` // 1-7 weekly, 1-31 monthly

	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date" json:"end_date"`

	SkipWeekend  bool `bson:"skip_weekend" json:"skip_weekend"`
	SkipHolidays bool `bson:"skip_holidays" json:"skip_holidays"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsForm returns true if the assignment schedules a form.
func (a *Assignment) IsForm() bool { return a.ResourceType == ResourceForm }

// IsMenu returns true if the assignment schedules a menu check.
func (a *Assignment) IsMenu() bool { return a.ResourceType == ResourceMenu }
