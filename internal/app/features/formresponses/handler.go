// internal/app/features/formresponses/handler.go
package formresponses

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	formstore "github.com/gourmetta/haccphub/internal/app/store/forms"
	responsestore "github.com/gourmetta/haccphub/internal/app/store/formresponses"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler accepts completed checklist forms.
type Handler struct {
	Responses *responsestore.Store
	Forms     *formstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a form responses Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Responses: responsestore.New(db),
		Forms:     formstore.New(db),
		Log:       logger,
	}
}

type submitRequest struct {
	FormID         string            `json:"form_id"`
	FacilityID     string            `json:"facility_id"`
	UserID         string            `json:"user_id"`
	Answers        map[string]string `json:"answers"`
	Signature      string            `json:"signature"`
	IdempotencyKey string            `json:"idempotency_key"`
}

// Submit handles POST /api/form-responses.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "submit form response")
	defer cancel()

	var req submitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FormID == "" || req.UserID == "" || req.FacilityID == "" {
		httpjson.Error(w, http.StatusBadRequest, "form_id, user_id and facility_id are required")
		return
	}

	formOID, err := primitive.ObjectIDFromHex(req.FormID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form_id")
		return
	}
	form, err := h.Forms.GetByID(ctx, formOID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		h.Log.Error("form responses: load form failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if form.RequiresSignature && req.Signature == "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "signature is required for this form")
		return
	}
	for _, q := range form.Questions {
		if strings.TrimSpace(req.Answers[q.ID]) == "" {
			httpjson.Error(w, http.StatusUnprocessableEntity, "all questions must be answered")
			return
		}
	}

	if req.IdempotencyKey != "" {
		existing, err := h.Responses.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			httpjson.Write(w, http.StatusOK, existing)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("form responses: idempotency lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	resp, err := h.Responses.Create(ctx, models.FormResponse{
		FormID:         req.FormID,
		FacilityID:     req.FacilityID,
		UserID:         req.UserID,
		Answers:        req.Answers,
		Signature:      req.Signature,
		IdempotencyKey: key,
	})
	if err != nil {
		h.Log.Error("form responses: insert failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Write(w, http.StatusCreated, resp)
}

// List handles GET /api/form-responses?form_id=…&from=…&to=….
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list form responses")
	defer cancel()

	if formID := r.URL.Query().Get("form_id"); formID != "" {
		out, err := h.Responses.ListByForm(ctx, formID)
		if err != nil {
			h.Log.Error("form responses: list by form failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		if out == nil {
			out = []models.FormResponse{}
		}
		httpjson.Write(w, http.StatusOK, out)
		return
	}

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

	out, err := h.Responses.ListBetween(ctx, from, to)
	if err != nil {
		h.Log.Error("form responses: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.FormResponse{}
	}
	httpjson.Write(w, http.StatusOK, out)
}
