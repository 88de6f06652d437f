// internal/app/features/auditlog/handler.go
package auditlog

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler serves the audit trail, newest first.
type Handler struct {
	Audit *audit.Store
	Log   *zap.Logger
}

// NewHandler constructs an audit log Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Audit: audit.New(db),
		Log:   logger,
	}
}

// List handles GET /api/audit-logs?entity=…&entity_id=…&limit=….
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list audit entries")
	defer cancel()

	q := r.URL.Query()

	var out []models.AuditEntry
	var err error
	if entity := q.Get("entity"); entity != "" && q.Get("entity_id") != "" {
		out, err = h.Audit.ListByEntity(ctx, entity, q.Get("entity_id"))
	} else {
		var limit int64
		if raw := q.Get("limit"); raw != "" {
			limit, err = strconv.ParseInt(raw, 10, 64)
			if err != nil || limit < 0 {
				httpjson.Error(w, http.StatusBadRequest, "invalid limit")
				return
			}
		}
		out, err = h.Audit.List(ctx, limit)
	}
	if err != nil {
		h.Log.Error("audit log: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []models.AuditEntry{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

type createRequest struct {
	UserID   string `json:"user_id"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`
	Detail   string `json:"detail"`
}

// Create handles POST /api/audit-logs. Server-side writes already log
// themselves; this endpoint lets clients record actions the server
// never sees, such as exports.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "append audit entry")
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action == "" || req.Entity == "" {
		httpjson.Error(w, http.StatusBadRequest, "action and entity are required")
		return
	}

	entry := models.AuditEntry{
		UserID:   req.UserID,
		Action:   req.Action,
		Entity:   req.Entity,
		EntityID: req.EntityID,
		Detail:   req.Detail,
	}
	if err := h.Audit.Append(ctx, entry); err != nil {
		h.Log.Error("audit log: append failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]bool{"recorded": true})
}
