// internal/app/features/menus/handler.go
package menus

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
	menustore "github.com/gourmetta/haccphub/internal/app/store/menus"
	"github.com/gourmetta/haccphub/internal/app/store/refdata"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages menus. Deleting a menu also removes the assignments
// that schedule it, so no worklist ever points at a missing menu.
type Handler struct {
	Menus       *menustore.Store
	Assignments *assignmentstore.Store
	RefData     *refdata.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs a menus Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Menus:       menustore.New(db),
		Assignments: assignmentstore.New(db),
		RefData:     refdata.New(db),
		Audit:       auditLog,
		Log:         logger,
	}
}

type menuRequest struct {
	Name            string `json:"name"`
	CookingMethodID string `json:"cooking_method_id"`
	ActorID         string `json:"actor_id"`
}

func (req *menuRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.CookingMethodID == "" {
		return errors.New("cooking_method_id is required")
	}
	return nil
}

// List handles GET /api/menus.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list menus")
	defer cancel()

	out, err := h.Menus.ListAll(ctx)
	if err != nil {
		h.Log.Error("menus: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.Menu{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Create handles POST /api/menus.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create menu")
	defer cancel()

	var req menuRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	methodOID, err := primitive.ObjectIDFromHex(req.CookingMethodID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid cooking_method_id")
		return
	}
	if _, err := h.RefData.GetCookingMethod(ctx, methodOID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "unknown cooking method")
			return
		}
		h.Log.Error("menus: cooking method lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	m, err := h.Menus.Create(ctx, models.Menu{
		Name:            req.Name,
		CookingMethodID: req.CookingMethodID,
	})
	if err != nil {
		h.Log.Error("menus: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.ActorID, "menu", m.ID.Hex(), m.Name)

	httpjson.Write(w, http.StatusCreated, m)
}

// Update handles PUT /api/menus/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update menu")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	var req menuRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Menus.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "menu not found")
		return
	}
	if err != nil {
		h.Log.Error("menus: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	m.Name = req.Name
	m.CookingMethodID = req.CookingMethodID

	m, err = h.Menus.Update(ctx, m)
	if err != nil {
		h.Log.Error("menus: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "menu", m.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, m)
}

// Delete handles DELETE /api/menus/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete menu")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	if err := h.Menus.Delete(ctx, id); err != nil {
		h.Log.Error("menus: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	n, err := h.Assignments.DeleteByResource(ctx, models.ResourceMenu, id.Hex())
	if err != nil {
		h.Log.Error("menus: assignment cleanup failed",
			zap.String("menu_id", id.Hex()), zap.Error(err))
	}

	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "menu", id.Hex(),
		fmt.Sprintf("removed %d assignments", n))

	w.WriteHeader(http.StatusNoContent)
}
