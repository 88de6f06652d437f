// internal/app/features/alerts/handler.go
package alerts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	alertstore "github.com/gourmetta/haccphub/internal/app/store/alerts"
	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler lists alerts and lets administrators resolve them.
type Handler struct {
	Alerts *alertstore.Store
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs an alerts Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Alerts: alertstore.New(db),
		Audit:  auditLog,
		Log:    logger,
	}
}

// List handles GET /api/alerts?unresolved=true&facility_id=….
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list alerts")
	defer cancel()

	var out []models.Alert
	var err error
	if facilityID := r.URL.Query().Get("facility_id"); facilityID != "" {
		out, err = h.Alerts.ListByFacility(ctx, facilityID)
	} else {
		out, err = h.Alerts.List(ctx, r.URL.Query().Get("unresolved") == "true")
	}
	if err != nil {
		h.Log.Error("alerts: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Alert{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

type resolveRequest struct {
	UserID string `json:"user_id"`
}

// Resolve handles POST /api/alerts/{id}/resolve. Resolving an already
// resolved alert succeeds without change.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "resolve alert")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	var req resolveRequest
	_ = httpjson.Decode(r, &req)

	err = h.Alerts.Resolve(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "alert not found")
		return
	}
	if err != nil {
		h.Log.Error("alerts: resolve failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, req.UserID, audit.ActionResolve, "alert", id.Hex(), "")

	httpjson.Write(w, http.StatusOK, map[string]bool{"resolved": true})
}
