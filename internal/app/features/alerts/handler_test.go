package alerts_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/features/alerts"
	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

func setup(t *testing.T) *alerts.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	auditLog := auditlog.New(audit.New(db), zap.NewNop())
	return alerts.NewHandler(db, auditLog, zap.NewNop())
}

func seedAlert(t *testing.T, h *alerts.Handler) models.Alert {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := h.Alerts.Create(ctx, models.Alert{
		FacilityID:     "fac-1",
		FacilityName:   "Central Kitchen",
		TargetName:     "Walk-in",
		CheckpointName: "Core",
		Value:          -10,
		Min:            -25,
		Max:            -18,
	})
	if err != nil {
		t.Fatalf("seed alert: %v", err)
	}
	return a
}

func TestList_UnresolvedOnly(t *testing.T) {
	h := setup(t)
	a := seedAlert(t, h)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := h.Alerts.Resolve(ctx, a.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	seedAlert(t, h)

	req := testutil.NewRequest("GET", "/api/alerts?unresolved=true")
	rec := testutil.NewRecorder()
	h.List(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got []models.Alert
	rec.DecodeJSON(t, &got)
	if len(got) != 1 {
		t.Fatalf("got %d alerts, want 1", len(got))
	}
	if got[0].Resolved {
		t.Error("listed alert should be unresolved")
	}
}

func TestResolve(t *testing.T) {
	h := setup(t)
	a := seedAlert(t, h)

	req := testutil.NewJSONRequest(t, "POST", "/api/alerts/"+a.ID.Hex()+"/resolve",
		map[string]string{"user_id": "admin-1"})
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec := testutil.NewRecorder()

	h.Resolve(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := h.Alerts.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get alert: %v", err)
	}
	if !got.Resolved {
		t.Error("alert should be resolved")
	}
	if got.ResolvedAt == nil {
		t.Error("resolved alert should carry a timestamp")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	h := setup(t)
	a := seedAlert(t, h)

	for range 2 {
		req := testutil.NewJSONRequest(t, "POST", "/api/alerts/"+a.ID.Hex()+"/resolve",
			map[string]string{"user_id": "admin-1"})
		req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
		rec := testutil.NewRecorder()
		h.Resolve(rec, req)
		rec.AssertStatus(t, http.StatusOK)
	}
}

func TestResolve_UnknownAlert(t *testing.T) {
	h := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/alerts/ffffffffffffffffffffffff/resolve",
		map[string]string{"user_id": "admin-1"})
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := testutil.NewRecorder()

	h.Resolve(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
