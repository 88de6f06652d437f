// internal/app/features/readings/handler.go
package readings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/compliance/escalate"
	"github.com/gourmetta/haccphub/internal/app/compliance/threshold"
	alertstore "github.com/gourmetta/haccphub/internal/app/store/alerts"
	facilitystore "github.com/gourmetta/haccphub/internal/app/store/facilities"
	menustore "github.com/gourmetta/haccphub/internal/app/store/menus"
	outboxstore "github.com/gourmetta/haccphub/internal/app/store/outbox"
	readingstore "github.com/gourmetta/haccphub/internal/app/store/readings"
	"github.com/gourmetta/haccphub/internal/app/store/refdata"
	fridgestore "github.com/gourmetta/haccphub/internal/app/store/refrigerators"
	settingsstore "github.com/gourmetta/haccphub/internal/app/store/settings"
	userstore "github.com/gourmetta/haccphub/internal/app/store/users"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler accepts temperature readings and derives alerts from
// violations.
type Handler struct {
	Readings      *readingstore.Store
	Alerts        *alertstore.Store
	Outbox        *outboxstore.Store
	Users         *userstore.Store
	Facilities    *facilitystore.Store
	Refrigerators *fridgestore.Store
	Menus         *menustore.Store
	RefData       *refdata.Store
	Settings      *settingsstore.Store
	Log           *zap.Logger
}

// NewHandler constructs a readings Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Readings:      readingstore.New(db),
		Alerts:        alertstore.New(db),
		Outbox:        outboxstore.New(db),
		Users:         userstore.New(db),
		Facilities:    facilitystore.New(db),
		Refrigerators: fridgestore.New(db),
		Menus:         menustore.New(db),
		RefData:       refdata.New(db),
		Settings:      settingsstore.New(db),
		Log:           logger,
	}
}

type submitRequest struct {
	TargetID       string  `json:"target_id"`
	TargetType     string  `json:"target_type"`
	CheckpointName string  `json:"checkpoint_name"`
	Value          float64 `json:"value"`
	UserID         string  `json:"user_id"`
	FacilityID     string  `json:"facility_id"`
	Reason         string  `json:"reason"`
	IdempotencyKey string  `json:"idempotency_key"`
}

type submitResponse struct {
	Reading models.Reading `json:"reading"`
	InRange bool           `json:"in_range"`
	AlertID string         `json:"alert_id,omitempty"`
}

// Submit handles POST /api/readings.
//
// The reading is stored first; everything downstream of a violation
// (alert document, notification fan-out) must not lose the measurement
// fact. An out-of-range value without a reason is rejected before
// anything is written.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "submit reading")
	defer cancel()

	var req submitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TargetID == "" || req.CheckpointName == "" || req.UserID == "" || req.FacilityID == "" {
		httpjson.Error(w, http.StatusBadRequest, "target_id, checkpoint_name, user_id and facility_id are required")
		return
	}
	if req.TargetType != models.ReadingTargetRefrigerator && req.TargetType != models.ReadingTargetMenu {
		httpjson.Error(w, http.StatusBadRequest, "target_type must be refrigerator or menu")
		return
	}

	// Replay of a submission the client never saw the response to.
	if req.IdempotencyKey != "" {
		existing, err := h.Readings.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			httpjson.Write(w, http.StatusOK, submitResponse{
				Reading: existing,
				InRange: existing.Reason == "",
			})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("readings: idempotency lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	cp, targetName, err := h.resolveCheckpoint(ctx, req.TargetType, req.TargetID, req.CheckpointName)
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, errUnknownCheckpoint) {
		httpjson.Error(w, http.StatusBadRequest, "unknown target or checkpoint")
		return
	}
	if err != nil {
		h.Log.Error("readings: checkpoint lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ev := threshold.Evaluate(cp, req.Value)
	if err := threshold.ValidateReason(ev, req.Reason); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	reading := models.Reading{
		TargetID:       req.TargetID,
		TargetType:     req.TargetType,
		CheckpointName: req.CheckpointName,
		Value:          req.Value,
		UserID:         req.UserID,
		FacilityID:     req.FacilityID,
		IdempotencyKey: key,
	}
	if !ev.InRange {
		reading.Reason = req.Reason
	}

	reading, err = h.Readings.Create(ctx, reading)
	if err != nil {
		h.Log.Error("readings: insert failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := submitResponse{Reading: reading, InRange: ev.InRange}
	if !ev.InRange {
		resp.AlertID = h.raiseAlert(ctx, ev, &reading, targetName)
	}

	httpjson.Write(w, http.StatusCreated, resp)
}

var errUnknownCheckpoint = errors.New("unknown checkpoint")

// resolveCheckpoint finds the acceptable range for the named checkpoint
// on the target, plus the target's display name. A missing or empty
// refrigerator type or cooking method resolves to the default
// checkpoint, mirroring what the worklist shows for such targets.
func (h *Handler) resolveCheckpoint(ctx context.Context, targetType, targetID, name string) (models.Checkpoint, string, error) {
	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return models.Checkpoint{}, "", mongo.ErrNoDocuments
	}

	var cps []models.Checkpoint
	var targetName string
	switch targetType {
	case models.ReadingTargetRefrigerator:
		fridge, err := h.Refrigerators.GetByID(ctx, oid)
		if err != nil {
			return models.Checkpoint{}, "", err
		}
		targetName = fridge.Name
		cps = models.DefaultRefrigeratorCheckpoints
		if typeID, err := primitive.ObjectIDFromHex(fridge.TypeID); err == nil {
			typ, err := h.RefData.GetRefrigeratorType(ctx, typeID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return models.Checkpoint{}, "", err
			}
			if len(typ.Checkpoints) > 0 {
				cps = typ.Checkpoints
			}
		}
	case models.ReadingTargetMenu:
		menu, err := h.Menus.GetByID(ctx, oid)
		if err != nil {
			return models.Checkpoint{}, "", err
		}
		targetName = menu.Name
		cps = models.DefaultMenuCheckpoints
		if methodID, err := primitive.ObjectIDFromHex(menu.CookingMethodID); err == nil {
			method, err := h.RefData.GetCookingMethod(ctx, methodID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return models.Checkpoint{}, "", err
			}
			if len(method.Checkpoints) > 0 {
				cps = method.Checkpoints
			}
		}
	}

	for _, cp := range cps {
		if cp.Name == name {
			return cp, targetName, nil
		}
	}
	return models.Checkpoint{}, "", errUnknownCheckpoint
}

// raiseAlert stores the alert document and queues the notification
// fan-out. Failures here are logged and never surfaced to the
// submitter; the reading is already durable and the alert is best
// effort on top of it.
func (h *Handler) raiseAlert(ctx context.Context, ev threshold.Evaluation, reading *models.Reading, targetName string) string {
	actx := threshold.AlertContext{
		FacilityID: reading.FacilityID,
		TargetName: targetName,
		UserID:     reading.UserID,
	}
	if oid, err := primitive.ObjectIDFromHex(reading.FacilityID); err == nil {
		if fac, err := h.Facilities.GetByID(ctx, oid); err == nil {
			actx.FacilityName = fac.Name
		}
	}
	if oid, err := primitive.ObjectIDFromHex(reading.UserID); err == nil {
		if u, err := h.Users.GetByID(ctx, oid); err == nil {
			actx.UserName = u.Name
		}
	}

	alert, err := h.Alerts.Create(ctx, threshold.Draft(ev, actx, reading.Timestamp))
	if err != nil {
		h.Log.Error("readings: alert insert failed", zap.Error(err))
		return ""
	}

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		h.Log.Error("readings: user list for fan-out failed", zap.Error(err))
		return alert.ID.Hex()
	}
	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("readings: settings load for fan-out failed", zap.Error(err))
		return alert.ID.Hex()
	}

	entries := escalate.Fanout(&alert, users, &cfg, time.Now().UTC())
	if err := h.Outbox.Enqueue(ctx, entries); err != nil {
		h.Log.Error("readings: outbox enqueue failed", zap.Error(err))
	}

	return alert.ID.Hex()
}

// List handles GET /api/readings?facility_id=…&from=…&to=….
// from/to are RFC 3339 timestamps; both default to the last 24 hours.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list readings")
	defer cancel()

	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)
	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = time.Parse(time.RFC3339, q); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = time.Parse(time.RFC3339, q); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
	}

	var out []models.Reading
	if facilityID := r.URL.Query().Get("facility_id"); facilityID != "" {
		out, err = h.Readings.ListByFacilityBetween(ctx, facilityID, from, to)
	} else {
		out, err = h.Readings.ListBetween(ctx, from, to)
	}
	if err != nil {
		h.Log.Error("readings: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Reading{}
	}

	httpjson.Write(w, http.StatusOK, out)
}
