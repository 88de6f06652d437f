// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is a kitchen or office worker. HomeFacilityID is where the user
// normally works; ManagedFacilityIDs lists facilities a manager is
// responsible for beyond their home.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Role               string             `bson:"role" json:"role"`
	HomeFacilityID     string             `bson:"home_facility_id,omitempty" json:"home_facility_id,omitempty"`
	ManagedFacilityIDs []string           `bson:"managed_facility_ids,omitempty" json:"managed_facility_ids,omitempty"`

	// EmailAlerts opts the user in to violation emails; ChatAlerts opts
	// them in to the shared chat channel. AllFacilitiesAlerts widens the
	// scope from their own facilities to every facility.
	EmailAlerts         bool `bson:"email_alerts" json:"email_alerts"`
	ChatAlerts          bool `bson:"chat_alerts" json:"chat_alerts"`
	AllFacilitiesAlerts bool `bson:"all_facilities_alerts" json:"all_facilities_alerts"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Manages reports whether the user manages the given facility.
func (u *User) Manages(facilityID string) bool {
	for _, id := range u.ManagedFacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}

// CoversFacility reports whether alerts from the facility fall within
// the user's scope: everything when AllFacilitiesAlerts is set,
// otherwise the home facility and any managed facility.
func (u *User) CoversFacility(facilityID string) bool {
	if u.AllFacilitiesAlerts {
		return true
	}
	return u.HomeFacilityID == facilityID || u.Manages(facilityID)
}
