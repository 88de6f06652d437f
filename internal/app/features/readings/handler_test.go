package readings_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/features/readings"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

type submitBody struct {
	TargetID       string  `json:"target_id"`
	TargetType     string  `json:"target_type"`
	CheckpointName string  `json:"checkpoint_name"`
	Value          float64 `json:"value"`
	UserID         string  `json:"user_id"`
	FacilityID     string  `json:"facility_id"`
	Reason         string  `json:"reason,omitempty"`
	IdempotencyKey string  `json:"idempotency_key,omitempty"`
}

type submitResult struct {
	Reading models.Reading `json:"reading"`
	InRange bool           `json:"in_range"`
	AlertID string         `json:"alert_id"`
}

func setupFridge(t *testing.T) (*readings.Handler, submitBody) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ft := fixtures.CreateFacilityType(ctx, "Kitchen")
	fac := fixtures.CreateFacility(ctx, "Central Kitchen", ft.ID.Hex())
	user := fixtures.CreateUser(ctx, "Anna", "anna@example.com", fac.ID.Hex())
	rt := fixtures.CreateRefrigeratorType(ctx, "Freezer", -25, -18)
	fridge := fixtures.CreateRefrigerator(ctx, "Walk-in", fac.ID.Hex(), rt.ID.Hex())

	body := submitBody{
		TargetID:       fridge.ID.Hex(),
		TargetType:     models.ReadingTargetRefrigerator,
		CheckpointName: "Core",
		Value:          -20,
		UserID:         user.ID.Hex(),
		FacilityID:     fac.ID.Hex(),
	}
	return readings.NewHandler(db, zap.NewNop()), body
}

func TestSubmit_InRange(t *testing.T) {
	h, body := setupFridge(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var res submitResult
	rec.DecodeJSON(t, &res)

	if !res.InRange {
		t.Error("value -20 in [-25,-18] should be in range")
	}
	if res.AlertID != "" {
		t.Errorf("in-range reading should not raise an alert, got %s", res.AlertID)
	}
	if res.Reading.ID.IsZero() {
		t.Error("reading should be assigned an id")
	}
}

func TestSubmit_BoundaryValuesCompliant(t *testing.T) {
	h, body := setupFridge(t)

	for _, v := range []float64{-25, -18} {
		body.Value = v
		req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
		rec := testutil.NewRecorder()

		h.Submit(rec, req)
		rec.AssertStatus(t, http.StatusCreated)

		var res submitResult
		rec.DecodeJSON(t, &res)
		if !res.InRange {
			t.Errorf("boundary value %v should be compliant", v)
		}
	}
}

func TestSubmit_OutOfRangeRequiresReason(t *testing.T) {
	h, body := setupFridge(t)
	body.Value = -10

	req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestSubmit_OutOfRangeWithReasonRaisesAlert(t *testing.T) {
	h, body := setupFridge(t)
	body.Value = -10
	body.Reason = "door left open"

	req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var res submitResult
	rec.DecodeJSON(t, &res)

	if res.InRange {
		t.Error("value -10 should be out of range")
	}
	if res.AlertID == "" {
		t.Error("out-of-range reading should raise an alert")
	}

	alerts, err := h.Alerts.List(t.Context(), true)
	if err != nil {
		t.Fatalf("list alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d unresolved alerts, want 1", len(alerts))
	}
	if alerts[0].Resolved {
		t.Error("new alert must be unresolved")
	}
	if alerts[0].Value != -10 || alerts[0].Min != -25 || alerts[0].Max != -18 {
		t.Errorf("alert snapshot wrong: %+v", alerts[0])
	}
}

func TestSubmit_IdempotentReplay(t *testing.T) {
	h, body := setupFridge(t)
	body.IdempotencyKey = "retry-123"

	req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec := testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var first submitResult
	rec.DecodeJSON(t, &first)

	// Same key again: the stored fact comes back, nothing new is made.
	req = testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec = testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var second submitResult
	rec.DecodeJSON(t, &second)

	if first.Reading.ID != second.Reading.ID {
		t.Errorf("replay should return the original reading: %s vs %s",
			first.Reading.ID.Hex(), second.Reading.ID.Hex())
	}
}

func TestSubmit_UnknownCheckpoint(t *testing.T) {
	h, body := setupFridge(t)
	body.CheckpointName = "Nonexistent"

	req := testutil.NewJSONRequest(t, "POST", "/api/readings", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
