// internal/app/features/settings/handler.go
package settings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	settingsstore "github.com/gourmetta/haccphub/internal/app/store/settings"
	userstore "github.com/gourmetta/haccphub/internal/app/store/users"
	"github.com/gourmetta/haccphub/internal/app/system/auditlog"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/mailer"
	"github.com/gourmetta/haccphub/internal/app/system/telegram"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// SiteName appears in test notifications so an operator can tell which
// deployment sent them.
const SiteName = "HACCP Hub"

// Handler manages the notification settings singleton and the channel
// test probes. Reference data endpoints live in refdata.go.
type Handler struct {
	Settings *settingsstore.Store
	Users    *userstore.Store
	RefData  *refdataHandler
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a settings Handler over the given database.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	h := &Handler{
		Settings: settingsstore.New(db),
		Users:    userstore.New(db),
		Audit:    auditLog,
		Log:      logger,
	}
	h.RefData = newRefdataHandler(db, auditLog, logger)
	return h
}

func (h *Handler) lookupUser(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, mongo.ErrNoDocuments
	}
	return h.Users.GetByID(ctx, oid)
}

// GetNotifications handles GET /api/settings/notifications. Secrets
// never appear in the response; secrets_set tells the admin page which
// ones are stored.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get notification settings")
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("settings: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"settings": s,
		"secrets_set": map[string]bool{
			"smtp_pass":      s.SMTPPass != "",
			"telegram_token": s.TelegramToken != "",
		},
		"email_configured":    s.EmailConfigured(),
		"telegram_configured": s.TelegramConfigured(),
	})
}

type notificationsRequest struct {
	SMTPHost       string `json:"smtp_host"`
	SMTPPort       int    `json:"smtp_port"`
	SMTPUser       string `json:"smtp_user"`
	SMTPPass       string `json:"smtp_pass"`
	MailFrom       string `json:"mail_from"`
	TelegramToken  string `json:"telegram_token"`
	TelegramChatID string `json:"telegram_chat_id"`
	ActorID        string `json:"actor_id"`
}

// PutNotifications handles PUT /api/settings/notifications. A blank
// secret keeps the stored one, so the admin page can resubmit the form
// without knowing the password.
func (h *Handler) PutNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "put notification settings")
	defer cancel()

	var req notificationsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SMTPPort < 0 || req.SMTPPort > 65535 {
		httpjson.Error(w, http.StatusBadRequest, "smtp_port out of range")
		return
	}

	current, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("settings: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	s := models.NotificationSettings{
		ID:             models.SettingsGlobalID,
		SMTPHost:       strings.TrimSpace(req.SMTPHost),
		SMTPPort:       req.SMTPPort,
		SMTPUser:       req.SMTPUser,
		SMTPPass:       req.SMTPPass,
		MailFrom:       strings.TrimSpace(req.MailFrom),
		TelegramToken:  req.TelegramToken,
		TelegramChatID: strings.TrimSpace(req.TelegramChatID),
	}
	if s.SMTPPass == "" {
		s.SMTPPass = current.SMTPPass
	}
	if s.TelegramToken == "" {
		s.TelegramToken = current.TelegramToken
	}

	if err := h.Settings.Put(ctx, s); err != nil {
		h.Log.Error("settings: save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Updated(ctx, req.ActorID, "notification_settings", models.SettingsGlobalID, "")

	httpjson.Write(w, http.StatusOK, s)
}

type testEmailRequest struct {
	UserID string `json:"user_id"`
}

// TestEmail handles POST /api/settings/notifications/test-email. It
// sends one message to the requesting user's address through the
// stored SMTP configuration.
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "send test email")
	defer cancel()

	var req testEmailRequest
	if err := httpjson.Decode(r, &req); err != nil || req.UserID == "" {
		httpjson.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	user, err := h.lookupUser(ctx, req.UserID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("settings: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	s, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("settings: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !s.EmailConfigured() {
		httpjson.Error(w, http.StatusConflict, "email channel is not configured")
		return
	}

	email := mailer.BuildTestEmail(mailer.TestEmailData{
		SiteName: SiteName,
		SentBy:   user.Name,
	})
	email.To = user.Email

	m := mailer.New(mailer.Config{
		Host:     s.SMTPHost,
		Port:     s.SMTPPort,
		User:     s.SMTPUser,
		Password: s.SMTPPass,
		From:     s.MailFrom,
	})
	if err := m.Send(email); err != nil {
		h.Log.Warn("settings: test email failed",
			zap.String("host", s.SMTPHost), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, fmt.Sprintf("send failed: %v", err))
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"sent_to": user.Email})
}

// TestTelegram handles POST /api/settings/notifications/test-telegram.
func (h *Handler) TestTelegram(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "send test telegram message")
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Error("settings: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !s.TelegramConfigured() {
		httpjson.Error(w, http.StatusConflict, "telegram channel is not configured")
		return
	}

	tg := telegram.New(s.TelegramToken, s.TelegramChatID)
	if err := tg.SendMessage(ctx, SiteName+": Testnachricht. Der Chat-Kanal funktioniert."); err != nil {
		h.Log.Warn("settings: test telegram message failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, fmt.Sprintf("send failed: %v", err))
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"sent": true})
}
