// internal/app/features/refrigerators/handler.go
package refrigerators

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/store/refdata"
	fridgestore "github.com/gourmetta/haccphub/internal/app/store/refrigerators"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages refrigerators. A refrigerator is due for a reading
// every non-weekend day the moment it exists; there is nothing to
// schedule here.
type Handler struct {
	Refrigerators *fridgestore.Store
	RefData       *refdata.Store
	Audit         *auditlog.Logger
	Log           *zap.Logger
}

// NewHandler constructs a refrigerators Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Refrigerators: fridgestore.New(db),
		RefData:       refdata.New(db),
		Audit:         auditLog,
		Log:           logger,
	}
}

type fridgeRequest struct {
	Name       string `json:"name"`
	FacilityID string `json:"facility_id"`
	TypeID     string `json:"type_id"`
	ActorID    string `json:"actor_id"`
}

func (req *fridgeRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.FacilityID == "" || req.TypeID == "" {
		return errors.New("facility_id and type_id are required")
	}
	return nil
}

// checkType verifies that the referenced refrigerator type exists, so a
// fridge never shows up on a worklist without checkpoints.
func (h *Handler) checkType(w http.ResponseWriter, r *http.Request, typeID string) bool {
	oid, err := primitive.ObjectIDFromHex(typeID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid type_id")
		return false
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check refrigerator type")
	defer cancel()
	if _, err := h.RefData.GetRefrigeratorType(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "unknown refrigerator type")
		} else {
			h.Log.Error("refrigerators: type lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
		}
		return false
	}
	return true
}

// List handles GET /api/refrigerators?facility_id=….
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list refrigerators")
	defer cancel()

	var out []models.Refrigerator
	var err error
	if facilityID := r.URL.Query().Get("facility_id"); facilityID != "" {
		out, err = h.Refrigerators.ListByFacility(ctx, facilityID)
	} else {
		out, err = h.Refrigerators.ListAll(ctx)
	}
	if err != nil {
		h.Log.Error("refrigerators: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Refrigerator{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Create handles POST /api/refrigerators.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req fridgeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.checkType(w, r, req.TypeID) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create refrigerator")
	defer cancel()

	f, err := h.Refrigerators.Create(ctx, models.Refrigerator{
		Name:       req.Name,
		FacilityID: req.FacilityID,
		TypeID:     req.TypeID,
	})
	if err != nil {
		h.Log.Error("refrigerators: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.ActorID, "refrigerator", f.ID.Hex(), f.Name)

	httpjson.Write(w, http.StatusCreated, f)
}

// Update handles PUT /api/refrigerators/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid refrigerator id")
		return
	}

	var req fridgeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.checkType(w, r, req.TypeID) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update refrigerator")
	defer cancel()

	f, err := h.Refrigerators.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "refrigerator not found")
		return
	}
	if err != nil {
		h.Log.Error("refrigerators: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	f.Name = req.Name
	f.FacilityID = req.FacilityID
	f.TypeID = req.TypeID

	f, err = h.Refrigerators.Update(ctx, f)
	if err != nil {
		h.Log.Error("refrigerators: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "refrigerator", f.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, f)
}

// Delete handles DELETE /api/refrigerators/{id}. Past readings for the
// unit are kept for the record.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete refrigerator")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid refrigerator id")
		return
	}

	if err := h.Refrigerators.Delete(ctx, id); err != nil {
		h.Log.Error("refrigerators: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "refrigerator", id.Hex(), "")

	w.WriteHeader(http.StatusNoContent)
}
