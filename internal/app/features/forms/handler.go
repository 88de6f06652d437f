// internal/app/features/forms/handler.go
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/gourmetta/haccphub/internal/app/store/assignments"
	"github.com/gourmetta/haccphub/internal/app/store/audit"
	formstore "github.com/gourmetta/haccphub/internal/app/store/forms"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages checklist form templates. Deleting a template also
// removes the assignments that schedule it.
type Handler struct {
	Forms       *formstore.Store
	Assignments *assignmentstore.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs a forms Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Forms:       formstore.New(db),
		Assignments: assignmentstore.New(db),
		Audit:       auditLog,
		Log:         logger,
	}
}

type formRequest struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Questions         []models.FormQuestion `json:"questions"`
	RequiresSignature bool                  `json:"requires_signature"`
	ActorID           string                `json:"actor_id"`
}

func (req *formRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if len(req.Questions) == 0 {
		return errors.New("at least one question is required")
	}
	for i, q := range req.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		switch q.Type {
		case models.QuestionText, models.QuestionYesNo:
		case models.QuestionChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("choice question %d needs at least two options", i+1)
			}
		default:
			return fmt.Errorf("question %d has unknown type %q", i+1, q.Type)
		}
	}
	return nil
}

// List handles GET /api/forms.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list forms")
	defer cancel()

	out, err := h.Forms.ListAll(ctx)
	if err != nil {
		h.Log.Error("forms: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.FormTemplate{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get handles GET /api/forms/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get form")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form id")
		return
	}

	f, err := h.Forms.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		h.Log.Error("forms: get failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, f)
}

// Create handles POST /api/forms.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create form")
	defer cancel()

	var req formRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.Forms.Create(ctx, models.FormTemplate{
		Title:             req.Title,
		Description:       req.Description,
		Questions:         req.Questions,
		RequiresSignature: req.RequiresSignature,
	})
	if err != nil {
		h.Log.Error("forms: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.ActorID, "form", f.ID.Hex(), f.Title)

	httpjson.Write(w, http.StatusCreated, f)
}

// Update handles PUT /api/forms/{id}. Edits apply to future responses;
// stored responses keep the answers they were submitted with.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update form")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form id")
		return
	}

	var req formRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.Forms.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		h.Log.Error("forms: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	f.Title = req.Title
	f.Description = req.Description
	f.Questions = req.Questions
	f.RequiresSignature = req.RequiresSignature

	f, err = h.Forms.Update(ctx, f)
	if err != nil {
		h.Log.Error("forms: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "form", f.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, f)
}

// Delete handles DELETE /api/forms/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete form")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form id")
		return
	}

	if err := h.Forms.Delete(ctx, id); err != nil {
		h.Log.Error("forms: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	n, err := h.Assignments.DeleteByResource(ctx, models.ResourceForm, id.Hex())
	if err != nil {
		h.Log.Error("forms: assignment cleanup failed",
			zap.String("form_id", id.Hex()), zap.Error(err))
	}

	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "form", id.Hex(),
		fmt.Sprintf("removed %d assignments", n))

	w.WriteHeader(http.StatusNoContent)
}
