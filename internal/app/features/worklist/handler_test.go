package worklist_test

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/compliance/schedule"
	"github.com/gourmetta/haccphub/internal/app/features/worklist"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

func TestServe_FacilityTypeAssignmentResolves(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ft := fixtures.CreateFacilityType(ctx, "Kitchen")
	fac := fixtures.CreateFacility(ctx, "Central Kitchen", ft.ID.Hex())
	user := fixtures.CreateUser(ctx, "Anna", "anna@example.com", fac.ID.Hex())
	cm := fixtures.CreateCookingMethod(ctx, "Cook and Serve", 65, 99)
	menu := fixtures.CreateMenu(ctx, "Lunch Line", cm.ID.Hex())

	assignment := models.Assignment{
		TargetType:   models.TargetFacilityType,
		TargetID:     ft.ID.Hex(),
		ResourceType: models.ResourceMenu,
		ResourceID:   menu.ID.Hex(),
		Frequency:    models.FrequencyDaily,
		StartDate:    "2025-01-01",
		EndDate:      "2025-12-31",
	}
	if _, err := db.Collection("assignments").InsertOne(ctx, assignment); err != nil {
		t.Fatalf("insert assignment: %v", err)
	}

	h := worklist.NewHandler(db, time.UTC, zap.NewNop())

	// Wednesday inside the range.
	req := testutil.NewRequest("GET",
		"/api/worklist?user_id="+user.ID.Hex()+"&facility_id="+fac.ID.Hex()+"&date=2025-03-12")
	rec := testutil.NewRecorder()

	h.Serve(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var wl schedule.Worklist
	rec.DecodeJSON(t, &wl)

	if wl.Suppressed {
		t.Fatal("worklist should not be suppressed")
	}
	if len(wl.Menus) != 1 {
		t.Fatalf("got %d menus, want 1", len(wl.Menus))
	}
	if wl.Menus[0].Menu.Name != "Lunch Line" {
		t.Errorf("menu name: got %q", wl.Menus[0].Menu.Name)
	}
	if wl.Menus[0].Complete {
		t.Error("menu should be incomplete with no readings")
	}
}

func TestServe_RefrigeratorsImplicit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ft := fixtures.CreateFacilityType(ctx, "Kitchen")
	fac := fixtures.CreateFacility(ctx, "Central Kitchen", ft.ID.Hex())
	user := fixtures.CreateUser(ctx, "Anna", "anna@example.com", fac.ID.Hex())
	rt := fixtures.CreateRefrigeratorType(ctx, "Freezer", -25, -18)
	fixtures.CreateRefrigerator(ctx, "Walk-in", fac.ID.Hex(), rt.ID.Hex())

	h := worklist.NewHandler(db, time.UTC, zap.NewNop())

	req := testutil.NewRequest("GET",
		"/api/worklist?user_id="+user.ID.Hex()+"&facility_id="+fac.ID.Hex()+"&date=2025-03-12")
	rec := testutil.NewRecorder()

	h.Serve(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var wl schedule.Worklist
	rec.DecodeJSON(t, &wl)

	if len(wl.Refrigerators) != 1 {
		t.Fatalf("got %d refrigerators, want 1 without any assignment", len(wl.Refrigerators))
	}

	// Saturday: refrigerators drop off the list.
	req = testutil.NewRequest("GET",
		"/api/worklist?user_id="+user.ID.Hex()+"&facility_id="+fac.ID.Hex()+"&date=2025-03-15")
	rec = testutil.NewRecorder()

	h.Serve(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &wl)

	if len(wl.Refrigerators) != 0 {
		t.Errorf("got %d refrigerators on a Saturday, want 0", len(wl.Refrigerators))
	}
}

func TestServe_ExceptionSuppresses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ft := fixtures.CreateFacilityType(ctx, "Kitchen")
	fac := fixtures.CreateFacility(ctx, "Central Kitchen", ft.ID.Hex())
	user := fixtures.CreateUser(ctx, "Anna", "anna@example.com", fac.ID.Hex())
	rt := fixtures.CreateRefrigeratorType(ctx, "Freezer", -25, -18)
	fixtures.CreateRefrigerator(ctx, "Walk-in", fac.ID.Hex(), rt.ID.Hex())

	exception := models.FacilityException{
		Name:        "Renovierung",
		FacilityIDs: []string{fac.ID.Hex()},
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-14",
	}
	if _, err := db.Collection("facility_exceptions").InsertOne(ctx, exception); err != nil {
		t.Fatalf("insert exception: %v", err)
	}

	h := worklist.NewHandler(db, time.UTC, zap.NewNop())

	req := testutil.NewRequest("GET",
		"/api/worklist?user_id="+user.ID.Hex()+"&facility_id="+fac.ID.Hex()+"&date=2025-03-12")
	rec := testutil.NewRecorder()

	h.Serve(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var wl schedule.Worklist
	rec.DecodeJSON(t, &wl)

	if !wl.Suppressed {
		t.Fatal("worklist should be suppressed during the exception")
	}
	if len(wl.Refrigerators) != 0 {
		t.Errorf("suppressed worklist should have no refrigerators, got %d", len(wl.Refrigerators))
	}
}

func TestServe_BadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := worklist.NewHandler(db, time.UTC, zap.NewNop())

	cases := []struct {
		name   string
		target string
	}{
		{"missing user", "/api/worklist?facility_id=abc"},
		{"bad facility id", "/api/worklist?user_id=u1&facility_id=not-an-oid"},
		{"bad date", "/api/worklist?user_id=u1&facility_id=64a000000000000000000000&date=12.03.2025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.Serve(rec, testutil.NewRequest("GET", tc.target))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}
