// internal/app/features/users/handler.go
package users

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/audit"
	userstore "github.com/gourmetta/haccphub/internal/app/store/users"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler manages user accounts and their notification preferences.
type Handler struct {
	Users *userstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a users Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Audit: auditLog,
		Log:   logger,
	}
}

type userRequest struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Role                string   `json:"role"`
	HomeFacilityID      string   `json:"home_facility_id"`
	ManagedFacilityIDs  []string `json:"managed_facility_ids"`
	EmailAlerts         bool     `json:"email_alerts"`
	ChatAlerts          bool     `json:"chat_alerts"`
	AllFacilitiesAlerts bool     `json:"all_facilities_alerts"`
	ActorID             string   `json:"actor_id"`
}

func (req *userRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return errors.New("a valid email is required")
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleStaff:
	default:
		return fmt.Errorf("unknown role %q", req.Role)
	}
	return nil
}

func (req *userRequest) apply(u *models.User) {
	u.Name = req.Name
	u.Email = req.Email
	u.Role = req.Role
	u.HomeFacilityID = req.HomeFacilityID
	u.ManagedFacilityIDs = req.ManagedFacilityIDs
	u.EmailAlerts = req.EmailAlerts
	u.ChatAlerts = req.ChatAlerts
	u.AllFacilitiesAlerts = req.AllFacilitiesAlerts
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	out, err := h.Users.ListAll(ctx)
	if err != nil {
		h.Log.Error("users: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.User{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get handles GET /api/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("users: get failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// Create handles POST /api/users. Email addresses must be unique.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create user")
	defer cancel()

	var req userRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		httpjson.Error(w, http.StatusConflict, "a user with this email already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("users: email lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	var u models.User
	req.apply(&u)

	u, err := h.Users.Create(ctx, u)
	if err != nil {
		h.Log.Error("users: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Created(ctx, req.ActorID, "user", u.ID.Hex(), u.Email)

	httpjson.Write(w, http.StatusCreated, u)
}

// Update handles PUT /api/users/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req userRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("users: load for update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	req.apply(&u)

	u, err = h.Users.Update(ctx, u)
	if err != nil {
		h.Log.Error("users: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "user", u.ID.Hex(), "")

	httpjson.Write(w, http.StatusOK, u)
}

// Delete handles DELETE /api/users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete user")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		h.Log.Error("users: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, r.URL.Query().Get("actor_id"), audit.ActionDelete, "user", id.Hex(), "")

	w.WriteHeader(http.StatusNoContent)
}
