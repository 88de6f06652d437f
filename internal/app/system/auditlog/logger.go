// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/audit"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Logger records administrative writes to both MongoDB (via
// audit.Store) and structured logs (via zap). A failed database write
// is logged and swallowed; auditing never fails the operation it
// describes.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

// Record logs one audit event. If the logger is nil, this is a no-op
// (allows tests to use a nil audit logger).
func (l *Logger) Record(ctx context.Context, userID, action, entity, entityID, detail string) {
	if l == nil {
		return
	}

	l.zapLog.Info("audit event",
		zap.Bool("audit", true),
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.String("entity", entity),
		zap.String("entity_id", entityID),
		zap.String("detail", detail),
	)

	err := l.store.Append(ctx, models.AuditEntry{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		l.zapLog.Error("failed to store audit event",
			zap.Error(err),
			zap.String("entity", entity),
			zap.String("action", action),
		)
	}
}

// Created logs a create of the given entity.
func (l *Logger) Created(ctx context.Context, userID, entity, entityID, detail string) {
	l.Record(ctx, userID, audit.ActionCreate, entity, entityID, detail)
}

// Updated logs an update of the given entity.
func (l *Logger) Updated(ctx context.Context, userID, entity, entityID, detail string) {
	l.Record(ctx, userID, audit.ActionUpdate, entity, entityID, detail)
}

// Deleted logs a delete of the given entity.
func (l *Logger) Deleted(ctx context.Context, userID, entity, entityID, detail string) {
	l.Record(ctx, userID, audit.ActionDelete, entity, entityID, detail)
}
