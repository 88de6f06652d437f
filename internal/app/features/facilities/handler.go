// internal/app/features/facilities/handler.go
package facilities

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/audit"
	facilitystore "github.com/gourmetta/haccphub/internal/app/store/facilities"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages facilities.
type Handler struct {
	Facilities *facilitystore.Store
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a facilities Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Facilities: facilitystore.New(db),
		Audit:      auditLog,
		Log:        logger,
	}
}

type facilityRequest struct {
	Name    string `json:"name"`
	TypeID  string `json:"type_id"`
	Address string `json:"address"`
	ActorID string `json:"actor_id"`
}

func (req *facilityRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.TypeID == "" {
		return errors.New("type_id is required")
	}
	return nil
}

// List handles GET /api/facilities?type_id=….
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list facilities")
	defer cancel()

	var out []models.Facility
	var err error
	if typeID := r.URL.Query().Get("type_id"); typeID != "" {
		out, err = h.Facilities.ListByType(ctx, typeID)
	} else {
		out, err = h.Facilities.ListAll(ctx)
	}
	if err != nil {
		h.Log.Error("facilities: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Facility{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get handles GET /api/facilities/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get facility")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	f, err := h.Facilities.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "facility not found")
		return
	}
	if err != nil {
		h.Log.Error("facilities: get failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, f)
}

// Create handles POST /api/facilities.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create facility")
	defer cancel()

	var req facilityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.Facilities.Create(ctx, models.Facility{
		Name:    req.Name,
		TypeID:  req.TypeID,
		Address: req.Address,
	})
	if err != nil {
		h.Log.Error("facilities: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.ActorID, "facility", f.ID.Hex(), f.Name)

	httpjson.Write(w, http.StatusCreated, f)
}

// Update handles PUT /api/facilities/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update facility")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	var req facilityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.Facilities.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "facility not found")
		return
	}
	if err != nil {
		h.Log.Error("facilities: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	f.Name = req.Name
	f.TypeID = req.TypeID
	f.Address = req.Address

	f, err = h.Facilities.Update(ctx, f)
	if err != nil {
		h.Log.Error("facilities: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "facility", f.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, f)
}

// Delete handles DELETE /api/facilities/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete facility")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	if err := h.Facilities.Delete(ctx, id); err != nil {
		h.Log.Error("facilities: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "facility", id.Hex(), "")

	w.WriteHeader(http.StatusNoContent)
}
