// internal/app/compliance/schedule/schedule.go
//
// Package schedule computes what is due at a facility on a civil date.
// It is pure: callers load the relevant documents and pass them in, so
// every rule here is testable without a database.
package schedule

import (
	"time"

	"github.com/gourmetta/haccphub/internal/app/compliance/calendar"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Matches reports whether the assignment targets the given user
// working at the given facility. A user target must name the user, a
// facility target must name the facility, and a facilityType target
// must name the facility's type.
func Matches(a *models.Assignment, userID string, facility *models.Facility) bool {
	switch a.TargetType {
	case models.TargetUser:
		return a.TargetID == userID
	case models.TargetFacility:
		return a.TargetID == facility.ID.Hex()
	case models.TargetFacilityType:
		return a.TargetID == facility.TypeID
	default:
		return false
	}
}

// Due reports whether the assignment is due on the date. The date must
// lie in the inclusive [StartDate, EndDate] range; the skip flags then
// remove weekend and holiday dates. Skips only ever shrink the range.
func Due(a *models.Assignment, date calendar.Date, holidays calendar.HolidaySet) bool {
	if !date.InRange(calendar.Date(a.StartDate), calendar.Date(a.EndDate)) {
		return false
	}
	if a.SkipWeekend && date.IsWeekend() {
		return false
	}
	if a.SkipHolidays && holidays.Contains(date) {
		return false
	}
	return true
}

// Suppressed reports whether any facility exception covers the
// facility on the date. An active exception suppresses every duty at
// the facility, implicit refrigerator checks included.
func Suppressed(exceptions []models.FacilityException, facilityID string, date calendar.Date) bool {
	for i := range exceptions {
		if exceptions[i].Covers(facilityID, string(date)) {
			return true
		}
	}
	return false
}

// CheckpointStatus pairs a checkpoint with its done flag for the day.
type CheckpointStatus struct {
	Checkpoint models.Checkpoint `json:"checkpoint"`
	Done       bool              `json:"done"`
}

// MenuItem is one due menu check with per-checkpoint completion.
type MenuItem struct {
	Menu         models.Menu        `json:"menu"`
	AssignmentID string             `json:"assignment_id"`
	Checkpoints  []CheckpointStatus `json:"checkpoints"`
	Complete     bool               `json:"complete"`
}

// RefrigeratorItem is one due refrigerator check.
type RefrigeratorItem struct {
	Refrigerator models.Refrigerator `json:"refrigerator"`
	Checkpoints  []CheckpointStatus  `json:"checkpoints"`
	Complete     bool                `json:"complete"`
}

// FormItem is one due form with its completion flag.
type FormItem struct {
	Form         models.FormTemplate `json:"form"`
	AssignmentID string              `json:"assignment_id"`
	Done         bool                `json:"done"`
}

// Worklist is everything due for a user at a facility on a date.
type Worklist struct {
	Date          calendar.Date      `json:"date"`
	Suppressed    bool               `json:"suppressed"`
	Menus         []MenuItem         `json:"menus"`
	Refrigerators []RefrigeratorItem `json:"refrigerators"`
	Forms         []FormItem         `json:"forms"`
}

// Input carries the documents Build needs. Readings and Responses may
// span any period; Build keeps only those falling on Date in Location.
type Input struct {
	Date     calendar.Date
	Location *time.Location

	UserID   string
	Facility *models.Facility

	Assignments []models.Assignment
	Holidays    calendar.HolidaySet
	Exceptions  []models.FacilityException

	Refrigerators     []models.Refrigerator
	RefrigeratorTypes map[string]models.RefrigeratorType
	Menus             map[string]models.Menu
	CookingMethods    map[string]models.CookingMethod
	Forms             map[string]models.FormTemplate

	Readings  []models.Reading
	Responses []models.FormResponse
}

// Build resolves the worklist for one user at one facility on one
// date. An active facility exception yields an empty, suppressed list.
// Refrigerators are implicitly due on every non-weekend date without
// any assignment. Menus reached through several assignments appear
// once. A refrigerator type or cooking method that is missing or has
// no checkpoints falls back to the default checkpoint.
func Build(in Input) Worklist {
	wl := Worklist{Date: in.Date}

	if Suppressed(in.Exceptions, in.Facility.ID.Hex(), in.Date) {
		wl.Suppressed = true
		return wl
	}

	done := readingIndex(in.Readings, in.Date, in.Location)

	if !in.Date.IsWeekend() {
		for i := range in.Refrigerators {
			fridge := in.Refrigerators[i]
			if fridge.FacilityID != in.Facility.ID.Hex() {
				continue
			}
			item := RefrigeratorItem{Refrigerator: fridge}
			cps := models.DefaultRefrigeratorCheckpoints
			if typ, ok := in.RefrigeratorTypes[fridge.TypeID]; ok && len(typ.Checkpoints) > 0 {
				cps = typ.Checkpoints
			}
			item.Checkpoints = statuses(cps, fridge.ID.Hex(), models.ReadingTargetRefrigerator, done)
			item.Complete = allDone(item.Checkpoints)
			wl.Refrigerators = append(wl.Refrigerators, item)
		}
	}

	seenMenus := make(map[string]bool)
	for i := range in.Assignments {
		a := &in.Assignments[i]
		if !Matches(a, in.UserID, in.Facility) || !Due(a, in.Date, in.Holidays) {
			continue
		}
		switch a.ResourceType {
		case models.ResourceMenu:
			if seenMenus[a.ResourceID] {
				continue
			}
			menu, ok := in.Menus[a.ResourceID]
			if !ok {
				continue
			}
			seenMenus[a.ResourceID] = true
			item := MenuItem{Menu: menu, AssignmentID: a.ID.Hex()}
			cps := models.DefaultMenuCheckpoints
			if method, ok := in.CookingMethods[menu.CookingMethodID]; ok && len(method.Checkpoints) > 0 {
				cps = method.Checkpoints
			}
			item.Checkpoints = statuses(cps, menu.ID.Hex(), models.ReadingTargetMenu, done)
			item.Complete = allDone(item.Checkpoints)
			wl.Menus = append(wl.Menus, item)
		case models.ResourceForm:
			form, ok := in.Forms[a.ResourceID]
			if !ok {
				continue
			}
			wl.Forms = append(wl.Forms, FormItem{
				Form:         form,
				AssignmentID: a.ID.Hex(),
				Done:         formDone(a, in, form.ID.Hex()),
			})
		}
	}

	return wl
}

type readingKey struct {
	targetID   string
	targetType string
	checkpoint string
}

func readingIndex(readings []models.Reading, date calendar.Date, loc *time.Location) map[readingKey]bool {
	idx := make(map[readingKey]bool)
	for i := range readings {
		r := &readings[i]
		if calendar.FromTime(r.Timestamp, loc) != date {
			continue
		}
		idx[readingKey{r.TargetID, r.TargetType, r.CheckpointName}] = true
	}
	return idx
}

func statuses(cps []models.Checkpoint, targetID, targetType string, done map[readingKey]bool) []CheckpointStatus {
	out := make([]CheckpointStatus, 0, len(cps))
	for _, cp := range cps {
		out = append(out, CheckpointStatus{
			Checkpoint: cp,
			Done:       done[readingKey{targetID, targetType, cp.Name}],
		})
	}
	return out
}

func allDone(cps []CheckpointStatus) bool {
	if len(cps) == 0 {
		return false
	}
	for _, cp := range cps {
		if !cp.Done {
			return false
		}
	}
	return true
}

// formDone checks for a same-day response. A user-targeted assignment
// is completed by the user; facility and facilityType assignments are
// completed by anyone at the facility.
func formDone(a *models.Assignment, in Input, formID string) bool {
	for i := range in.Responses {
		resp := &in.Responses[i]
		if resp.FormID != formID {
			continue
		}
		if calendar.FromTime(resp.Timestamp, in.Location) != in.Date {
			continue
		}
		if a.TargetType == models.TargetUser {
			if resp.UserID == in.UserID {
				return true
			}
			continue
		}
		if resp.FacilityID == in.Facility.ID.Hex() {
			return true
		}
	}
	return false
}
