// internal/app/features/assignments/handler.go
package assignments

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/compliance/calendar"
	assignmentstore "github.com/gourmetta/haccphub/internal/app/store/assignments"
	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages form and menu assignments.
type Handler struct {
	Assignments *assignmentstore.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs an assignments Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		Audit:       auditLog,
		Log:         logger,
	}
}

type assignmentRequest struct {
	TargetType   string `json:"target_type"`
	TargetID     string `json:"target_id"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Frequency    string `json:"frequency"`
	FrequencyDay int    `json:"frequency_day"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	SkipWeekend  bool   `json:"skip_weekend"`
	SkipHolidays bool   `json:"skip_holidays"`
	UserID       string `json:"user_id"`
}

func (req *assignmentRequest) validate() error {
	switch req.TargetType {
	case models.TargetUser, models.TargetFacility, models.TargetFacilityType:
	default:
		return fmt.Errorf("unknown target_type %q", req.TargetType)
	}
	switch req.ResourceType {
	case models.ResourceForm, models.ResourceMenu:
	default:
		return fmt.Errorf("unknown resource_type %q", req.ResourceType)
	}
	if req.TargetID == "" || req.ResourceID == "" {
		return errors.New("target_id and resource_id are required")
	}
	start, err := calendar.Parse(req.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := calendar.Parse(req.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}
	if end < start {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

func (req *assignmentRequest) model() models.Assignment {
	return models.Assignment{
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Frequency:    req.Frequency,
		FrequencyDay: req.FrequencyDay,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SkipWeekend:  req.SkipWeekend,
		SkipHolidays: req.SkipHolidays,
	}
}

// List handles GET /api/assignments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list assignments")
	defer cancel()

	var out []models.Assignment
	var err error
	q := r.URL.Query()
	switch {
	case q.Get("date") != "":
		if _, perr := calendar.Parse(q.Get("date")); perr != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid date")
			return
		}
		out, err = h.Assignments.ListActiveOn(ctx, q.Get("date"))
	case q.Get("resource_type") != "" && q.Get("resource_id") != "":
		out, err = h.Assignments.ListByResource(ctx, q.Get("resource_type"), q.Get("resource_id"))
	default:
		out, err = h.Assignments.ListAll(ctx)
	}
	if err != nil {
		h.Log.Error("assignments: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Assignment{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get handles GET /api/assignments/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get assignment")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	a, err := h.Assignments.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		h.Log.Error("assignments: get failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// Create handles POST /api/assignments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create assignment")
	defer cancel()

	var req assignmentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Assignments.Create(ctx, req.model())
	if err != nil {
		h.Log.Error("assignments: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.UserID, "assignment", a.ID.Hex(),
		fmt.Sprintf("%s %s for %s %s", a.ResourceType, a.ResourceID, a.TargetType, a.TargetID))

	httpjson.Write(w, http.StatusCreated, a)
}

// Update handles PUT /api/assignments/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update assignment")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	var req assignmentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.Assignments.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err != nil {
		h.Log.Error("assignments: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	a := req.model()
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt

	a, err = h.Assignments.Update(ctx, a)
	if err != nil {
		h.Log.Error("assignments: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.UserID, "assignment", a.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, a)
}

// Delete handles DELETE /api/assignments/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete assignment")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	if err := h.Assignments.Delete(ctx, id); err != nil {
		h.Log.Error("assignments: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, r.URL.Query().Get("user_id"), audit.ActionDelete, "assignment", id.Hex(), "")

	w.WriteHeader(http.StatusNoContent)
}
