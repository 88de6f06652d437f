// internal/app/features/settings/refdata.go
package settings

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/compliance/calendar"
	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/store/refdata"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// refdataHandler serves the administrator-maintained reference
// collections under /api/settings.
type refdataHandler struct {
	Store *refdata.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func newRefdataHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *refdataHandler {
	return &refdataHandler{
		Store: refdata.New(db),
		Audit: auditLog,
		Log:   logger,
	}
}

func validateCheckpoints(cps []models.Checkpoint) error {
	if len(cps) == 0 {
		return errors.New("at least one checkpoint is required")
	}
	for _, cp := range cps {
		if strings.TrimSpace(cp.Name) == "" {
			return errors.New("checkpoint name is required")
		}
		if cp.MinTemp > cp.MaxTemp {
			return fmt.Errorf("checkpoint %q: min_temp %v exceeds max_temp %v",
				cp.Name, cp.MinTemp, cp.MaxTemp)
		}
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Facility types ---

func (h *refdataHandler) ListFacilityTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list facility types")
	defer cancel()

	out, err := h.Store.ListFacilityTypes(ctx)
	if err != nil {
		h.Log.Error("settings: list facility types failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.FacilityType{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *refdataHandler) CreateFacilityType(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create facility type")
	defer cancel()

	var t models.FacilityType
	if err := httpjson.Decode(r, &t); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	t, err := h.Store.CreateFacilityType(ctx, t)
	if err != nil {
		h.Log.Error("settings: create facility type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, r.URL.Query().Get("actor_id"), "facility_type", t.ID.Hex(), t.Name)
	httpjson.Write(w, http.StatusCreated, t)
}

func (h *refdataHandler) DeleteFacilityType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete facility type")
	defer cancel()

	if err := h.Store.DeleteFacilityType(ctx, id); err != nil {
		h.Log.Error("settings: delete facility type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "facility_type", id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}

// --- Refrigerator types ---

func (h *refdataHandler) ListRefrigeratorTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list refrigerator types")
	defer cancel()

	out, err := h.Store.ListRefrigeratorTypes(ctx)
	if err != nil {
		h.Log.Error("settings: list refrigerator types failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.RefrigeratorType{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *refdataHandler) CreateRefrigeratorType(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create refrigerator type")
	defer cancel()

	var t models.RefrigeratorType
	if err := httpjson.Decode(r, &t); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateCheckpoints(t.Checkpoints); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Store.CreateRefrigeratorType(ctx, t)
	if err != nil {
		h.Log.Error("settings: create refrigerator type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, r.URL.Query().Get("actor_id"), "refrigerator_type", t.ID.Hex(), t.Name)
	httpjson.Write(w, http.StatusCreated, t)
}

func (h *refdataHandler) UpdateRefrigeratorType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update refrigerator type")
	defer cancel()

	var t models.RefrigeratorType
	if err := httpjson.Decode(r, &t); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateCheckpoints(t.Checkpoints); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Store.GetRefrigeratorType(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "refrigerator type not found")
			return
		}
		h.Log.Error("settings: load refrigerator type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	t.ID = id
	t, err := h.Store.UpdateRefrigeratorType(ctx, t)
	if err != nil {
		h.Log.Error("settings: update refrigerator type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, r.URL.Query().Get("actor_id"), "refrigerator_type", t.ID.Hex(), "")
	httpjson.Write(w, http.StatusOK, t)
}

func (h *refdataHandler) DeleteRefrigeratorType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete refrigerator type")
	defer cancel()

	if err := h.Store.DeleteRefrigeratorType(ctx, id); err != nil {
		h.Log.Error("settings: delete refrigerator type failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "refrigerator_type", id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}

// --- Cooking methods ---

func (h *refdataHandler) ListCookingMethods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list cooking methods")
	defer cancel()

	out, err := h.Store.ListCookingMethods(ctx)
	if err != nil {
		h.Log.Error("settings: list cooking methods failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.CookingMethod{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *refdataHandler) CreateCookingMethod(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create cooking method")
	defer cancel()

	var m models.CookingMethod
	if err := httpjson.Decode(r, &m); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(m.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateCheckpoints(m.Checkpoints); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Store.CreateCookingMethod(ctx, m)
	if err != nil {
		h.Log.Error("settings: create cooking method failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, r.URL.Query().Get("actor_id"), "cooking_method", m.ID.Hex(), m.Name)
	httpjson.Write(w, http.StatusCreated, m)
}

func (h *refdataHandler) UpdateCookingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update cooking method")
	defer cancel()

	var m models.CookingMethod
	if err := httpjson.Decode(r, &m); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(m.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateCheckpoints(m.Checkpoints); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Store.GetCookingMethod(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "cooking method not found")
			return
		}
		h.Log.Error("settings: load cooking method failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	m.ID = id
	m, err := h.Store.UpdateCookingMethod(ctx, m)
	if err != nil {
		h.Log.Error("settings: update cooking method failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, r.URL.Query().Get("actor_id"), "cooking_method", m.ID.Hex(), "")
	httpjson.Write(w, http.StatusOK, m)
}

func (h *refdataHandler) DeleteCookingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete cooking method")
	defer cancel()

	if err := h.Store.DeleteCookingMethod(ctx, id); err != nil {
		h.Log.Error("settings: delete cooking method failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "cooking_method", id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}

// --- Holidays ---

func (h *refdataHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list holidays")
	defer cancel()

	out, err := h.Store.ListHolidays(ctx)
	if err != nil {
		h.Log.Error("settings: list holidays failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Holiday{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *refdataHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create holiday")
	defer cancel()

	var hd models.Holiday
	if err := httpjson.Decode(r, &hd); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := calendar.Parse(hd.StartDate)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := calendar.Parse(hd.EndDate)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if end < start {
		httpjson.Error(w, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	hd, err = h.Store.CreateHoliday(ctx, hd)
	if err != nil {
		h.Log.Error("settings: create holiday failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, r.URL.Query().Get("actor_id"), "holiday", hd.ID.Hex(),
		fmt.Sprintf("%s %s..%s", hd.Name, hd.StartDate, hd.EndDate))
	httpjson.Write(w, http.StatusCreated, hd)
}

func (h *refdataHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete holiday")
	defer cancel()

	if err := h.Store.DeleteHoliday(ctx, id); err != nil {
		h.Log.Error("settings: delete holiday failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "holiday", id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}

// --- Facility exceptions ---

func (h *refdataHandler) ListExceptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list facility exceptions")
	defer cancel()

	out, err := h.Store.ListExceptions(ctx)
	if err != nil {
		h.Log.Error("settings: list exceptions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.FacilityException{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *refdataHandler) CreateException(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create facility exception")
	defer cancel()

	var e models.FacilityException
	if err := httpjson.Decode(r, &e); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(e.FacilityIDs) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "facility_ids must name at least one facility")
		return
	}
	start, err := calendar.Parse(e.StartDate)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := calendar.Parse(e.EndDate)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if end < start {
		httpjson.Error(w, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	e, err = h.Store.CreateException(ctx, e)
	if err != nil {
		h.Log.Error("settings: create exception failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, r.URL.Query().Get("actor_id"), "facility_exception", e.ID.Hex(),
		fmt.Sprintf("%s %s..%s", strings.Join(e.FacilityIDs, ","), e.StartDate, e.EndDate))
	httpjson.Write(w, http.StatusCreated, e)
}

func (h *refdataHandler) DeleteException(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete facility exception")
	defer cancel()

	if err := h.Store.DeleteException(ctx, id); err != nil {
		h.Log.Error("settings: delete exception failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "facility_exception", id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}
