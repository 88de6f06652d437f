// internal/app/compliance/schedule/schedule_test.go
package schedule

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gourmetta/haccphub/internal/app/compliance/calendar"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

var (
	facilityID = primitive.NewObjectID()
	menuID     = primitive.NewObjectID()
	formID     = primitive.NewObjectID()
	fridgeID   = primitive.NewObjectID()
)

func testFacility() *models.Facility {
	return &models.Facility{ID: facilityID, Name: "Central Kitchen", TypeID: "kitchen"}
}

func menuAssignment(target, targetID, start, end string) models.Assignment {
	return models.Assignment{
		ID:           primitive.NewObjectID(),
		TargetType:   target,
		TargetID:     targetID,
		ResourceType: models.ResourceMenu,
		ResourceID:   menuID.Hex(),
		StartDate:    start,
		EndDate:      end,
	}
}

func baseInput(date calendar.Date) Input {
	return Input{
		Date:     date,
		Location: time.UTC,
		UserID:   "user-1",
		Facility: testFacility(),
		Menus: map[string]models.Menu{
			menuID.Hex(): {ID: menuID, Name: "Lunch Line", CookingMethodID: "cm-1"},
		},
		CookingMethods: map[string]models.CookingMethod{
			"cm-1": {Name: "Cook and Serve", Checkpoints: []models.Checkpoint{
				{Name: "Serving", MinTemp: 65, MaxTemp: 99},
			}},
		},
		Forms: map[string]models.FormTemplate{
			formID.Hex(): {ID: formID, Title: "Cleaning Checklist"},
		},
		RefrigeratorTypes: map[string]models.RefrigeratorType{
			"rt-1": {Name: "Freezer", Checkpoints: []models.Checkpoint{
				{Name: "Core", MinTemp: -25, MaxTemp: -18},
			}},
		},
	}
}

func TestMatchesTargets(t *testing.T) {
	fac := testFacility()

	cases := []struct {
		name     string
		target   string
		targetID string
		want     bool
	}{
		{"user match", models.TargetUser, "user-1", true},
		{"user mismatch", models.TargetUser, "user-2", false},
		{"facility match", models.TargetFacility, facilityID.Hex(), true},
		{"facility mismatch", models.TargetFacility, primitive.NewObjectID().Hex(), false},
		{"facility type match", models.TargetFacilityType, "kitchen", true},
		{"facility type mismatch", models.TargetFacilityType, "school", false},
		{"unknown target kind", "region", "kitchen", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := models.Assignment{TargetType: tc.target, TargetID: tc.targetID}
			if got := Matches(&a, "user-1", fac); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDueRangeAndSkips(t *testing.T) {
	holidays := calendar.NewHolidaySet([][2]string{{"2025-03-17", "2025-03-18"}})

	a := models.Assignment{StartDate: "2025-03-10", EndDate: "2025-03-20"}
	cases := []struct {
		name         string
		date         calendar.Date
		skipWeekend  bool
		skipHolidays bool
		want         bool
	}{
		{"inside range", "2025-03-12", false, false, true},
		{"start boundary", "2025-03-10", false, false, true},
		{"end boundary", "2025-03-20", false, false, true},
		{"before range", "2025-03-09", false, false, false},
		{"after range", "2025-03-21", false, false, false},
		{"weekend kept without flag", "2025-03-15", false, false, true},
		{"weekend skipped", "2025-03-15", true, false, false},
		{"holiday kept without flag", "2025-03-17", false, false, true},
		{"holiday skipped", "2025-03-17", false, true, false},
		{"second day of holiday range skipped", "2025-03-18", false, true, false},
		{"day after holiday range due", "2025-03-19", false, true, true},
		{"weekday unaffected by flags", "2025-03-12", true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := a
			a.SkipWeekend = tc.skipWeekend
			a.SkipHolidays = tc.skipHolidays
			if got := Due(&a, tc.date, holidays); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildFacilityTypeAssignmentResolves(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacilityType, "kitchen", "2025-03-01", "2025-03-31"),
	}

	wl := Build(in)
	if len(wl.Menus) != 1 {
		t.Fatalf("got %d menus, want 1", len(wl.Menus))
	}
	if wl.Menus[0].Menu.Name != "Lunch Line" {
		t.Errorf("got menu %q", wl.Menus[0].Menu.Name)
	}
	if wl.Menus[0].Complete {
		t.Error("menu should be incomplete with no readings")
	}
}

func TestBuildDeduplicatesMenus(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacility, facilityID.Hex(), "2025-03-01", "2025-03-31"),
		menuAssignment(models.TargetFacilityType, "kitchen", "2025-03-01", "2025-03-31"),
	}

	wl := Build(in)
	if len(wl.Menus) != 1 {
		t.Fatalf("same menu via two assignments: got %d items, want 1", len(wl.Menus))
	}
}

func TestBuildRefrigeratorsImplicitlyDue(t *testing.T) {
	in := baseInput("2025-03-12") // Wednesday
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, Name: "Walk-in", FacilityID: facilityID.Hex(), TypeID: "rt-1"},
		{ID: primitive.NewObjectID(), Name: "Elsewhere", FacilityID: "other", TypeID: "rt-1"},
	}

	wl := Build(in)
	if len(wl.Refrigerators) != 1 {
		t.Fatalf("got %d refrigerators, want 1", len(wl.Refrigerators))
	}
	if wl.Refrigerators[0].Refrigerator.Name != "Walk-in" {
		t.Errorf("got %q", wl.Refrigerators[0].Refrigerator.Name)
	}
}

func TestBuildRefrigeratorsNeverDueOnWeekends(t *testing.T) {
	in := baseInput("2025-03-15") // Saturday
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, Name: "Walk-in", FacilityID: facilityID.Hex(), TypeID: "rt-1"},
	}

	wl := Build(in)
	if len(wl.Refrigerators) != 0 {
		t.Errorf("got %d refrigerators on a Saturday, want 0", len(wl.Refrigerators))
	}
}

func TestBuildExceptionSuppressesEverything(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacility, facilityID.Hex(), "2025-03-01", "2025-03-31"),
	}
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, FacilityID: facilityID.Hex(), TypeID: "rt-1"},
	}
	in.Exceptions = []models.FacilityException{
		{FacilityIDs: []string{facilityID.Hex()}, StartDate: "2025-03-12", EndDate: "2025-03-12"},
	}

	wl := Build(in)
	if !wl.Suppressed {
		t.Fatal("worklist should be suppressed")
	}
	if len(wl.Menus) != 0 || len(wl.Refrigerators) != 0 || len(wl.Forms) != 0 {
		t.Error("suppressed worklist should be empty")
	}
}

func TestBuildExceptionOtherFacilityIgnored(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, FacilityID: facilityID.Hex(), TypeID: "rt-1"},
	}
	in.Exceptions = []models.FacilityException{
		{FacilityIDs: []string{"other"}, StartDate: "2025-03-01", EndDate: "2025-03-31"},
	}

	wl := Build(in)
	if wl.Suppressed {
		t.Fatal("exception at another facility should not suppress")
	}
	if len(wl.Refrigerators) != 1 {
		t.Errorf("got %d refrigerators, want 1", len(wl.Refrigerators))
	}
}

func TestBuildExceptionCoversSeveralFacilities(t *testing.T) {
	closure := models.FacilityException{
		Name:        "Sommerferien",
		FacilityIDs: []string{"other-1", facilityID.Hex(), "other-2"},
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-31",
	}

	in := baseInput("2025-03-12")
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, FacilityID: facilityID.Hex(), TypeID: "rt-1"},
	}
	in.Exceptions = []models.FacilityException{closure}

	wl := Build(in)
	if !wl.Suppressed {
		t.Fatal("facility listed in a shared closure should be suppressed")
	}

	in = baseInput("2025-03-12")
	in.Facility = &models.Facility{ID: primitive.NewObjectID(), Name: "Unlisted", TypeID: "kitchen"}
	in.Exceptions = []models.FacilityException{closure}

	wl = Build(in)
	if wl.Suppressed {
		t.Error("facility outside the closure's list should not be suppressed")
	}
}

func TestBuildDefaultCheckpoints(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Refrigerators = []models.Refrigerator{
		{ID: fridgeID, Name: "Orphan", FacilityID: facilityID.Hex(), TypeID: "deleted-type"},
	}
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacility, facilityID.Hex(), "2025-03-01", "2025-03-31"),
	}
	in.Menus = map[string]models.Menu{
		menuID.Hex(): {ID: menuID, Name: "Lunch Line", CookingMethodID: "deleted-method"},
	}

	wl := Build(in)
	if len(wl.Refrigerators) != 1 || len(wl.Menus) != 1 {
		t.Fatalf("got %d refrigerators and %d menus, want 1 and 1",
			len(wl.Refrigerators), len(wl.Menus))
	}

	fridgeCps := wl.Refrigerators[0].Checkpoints
	if len(fridgeCps) != 1 || fridgeCps[0].Checkpoint.Name != "Temperatur" {
		t.Errorf("fridge without a type should get the default checkpoint, got %+v", fridgeCps)
	}
	if fridgeCps[0].Checkpoint.MinTemp != 2 || fridgeCps[0].Checkpoint.MaxTemp != 7 {
		t.Errorf("default fridge range: got [%v, %v], want [2, 7]",
			fridgeCps[0].Checkpoint.MinTemp, fridgeCps[0].Checkpoint.MaxTemp)
	}

	menuCps := wl.Menus[0].Checkpoints
	if len(menuCps) != 1 || menuCps[0].Checkpoint.Name != "Kern-Temperatur" {
		t.Errorf("menu without a cooking method should get the default checkpoint, got %+v", menuCps)
	}
	if menuCps[0].Checkpoint.MinTemp != 72 || menuCps[0].Checkpoint.MaxTemp != 95 {
		t.Errorf("default menu range: got [%v, %v], want [72, 95]",
			menuCps[0].Checkpoint.MinTemp, menuCps[0].Checkpoint.MaxTemp)
	}
}

func TestBuildMenuCompletion(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacility, facilityID.Hex(), "2025-03-01", "2025-03-31"),
	}
	in.Readings = []models.Reading{
		{
			TargetID:       menuID.Hex(),
			TargetType:     models.ReadingTargetMenu,
			CheckpointName: "Serving",
			Value:          72,
			Timestamp:      time.Date(2025, 3, 12, 11, 30, 0, 0, time.UTC),
		},
	}

	wl := Build(in)
	if len(wl.Menus) != 1 {
		t.Fatalf("got %d menus, want 1", len(wl.Menus))
	}
	if !wl.Menus[0].Complete {
		t.Error("menu with all checkpoints read should be complete")
	}
}

func TestBuildReadingFromOtherDayIgnored(t *testing.T) {
	in := baseInput("2025-03-12")
	in.Assignments = []models.Assignment{
		menuAssignment(models.TargetFacility, facilityID.Hex(), "2025-03-01", "2025-03-31"),
	}
	in.Readings = []models.Reading{
		{
			TargetID:       menuID.Hex(),
			TargetType:     models.ReadingTargetMenu,
			CheckpointName: "Serving",
			Value:          72,
			Timestamp:      time.Date(2025, 3, 11, 11, 30, 0, 0, time.UTC),
		},
	}

	wl := Build(in)
	if wl.Menus[0].Complete {
		t.Error("yesterday's reading must not complete today's check")
	}
}

func TestBuildFormCompletion(t *testing.T) {
	formAssignment := func(target, targetID string) models.Assignment {
		return models.Assignment{
			ID:           primitive.NewObjectID(),
			TargetType:   target,
			TargetID:     targetID,
			ResourceType: models.ResourceForm,
			ResourceID:   formID.Hex(),
			StartDate:    "2025-03-01",
			EndDate:      "2025-03-31",
		}
	}
	ts := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		a        models.Assignment
		response models.FormResponse
		want     bool
	}{
		{
			"user target completed by the user",
			formAssignment(models.TargetUser, "user-1"),
			models.FormResponse{FormID: formID.Hex(), UserID: "user-1", Timestamp: ts},
			true,
		},
		{
			"user target not completed by a colleague",
			formAssignment(models.TargetUser, "user-1"),
			models.FormResponse{FormID: formID.Hex(), UserID: "user-2", FacilityID: facilityID.Hex(), Timestamp: ts},
			false,
		},
		{
			"facility target completed by anyone at the facility",
			formAssignment(models.TargetFacility, facilityID.Hex()),
			models.FormResponse{FormID: formID.Hex(), UserID: "user-2", FacilityID: facilityID.Hex(), Timestamp: ts},
			true,
		},
		{
			"facility target not completed at another facility",
			formAssignment(models.TargetFacility, facilityID.Hex()),
			models.FormResponse{FormID: formID.Hex(), UserID: "user-1", FacilityID: "other", Timestamp: ts},
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput("2025-03-12")
			in.Assignments = []models.Assignment{tc.a}
			in.Responses = []models.FormResponse{tc.response}

			wl := Build(in)
			if len(wl.Forms) != 1 {
				t.Fatalf("got %d forms, want 1", len(wl.Forms))
			}
			if wl.Forms[0].Done != tc.want {
				t.Errorf("Done: got %v, want %v", wl.Forms[0].Done, tc.want)
			}
		})
	}
}
