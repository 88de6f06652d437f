// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	outboxstore "github.com/gourmetta/haccphub/internal/app/store/outbox"
	settingsstore "github.com/gourmetta/haccphub/internal/app/store/settings"
	"github.com/gourmetta/haccphub/internal/app/system/workers"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// outboxWorker is started here and stopped in Shutdown.
var outboxWorker *workers.OutboxDispatch

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It seeds the notification settings singleton and starts the outbox
// dispatch worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	settings := settingsstore.New(deps.MongoDatabase)

	if err := settings.EnsureDefault(ctx); err != nil {
		return fmt.Errorf("seed notification settings: %w", err)
	}

	// A fresh deployment starts with blank delivery settings. When the
	// operator provided fallback values through config, copy them in so
	// alerts can flow before anyone visits the settings page.
	current, err := settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load notification settings: %w", err)
	}
	if current.SMTPHost == "" && appCfg.MailSMTPHost != "" {
		current.SMTPHost = appCfg.MailSMTPHost
		current.SMTPPort = appCfg.MailSMTPPort
		current.SMTPUser = appCfg.MailSMTPUser
		current.SMTPPass = appCfg.MailSMTPPass
		current.MailFrom = appCfg.MailFrom
		current.ID = models.SettingsGlobalID
		if err := settings.Put(ctx, current); err != nil {
			return fmt.Errorf("seed SMTP settings: %w", err)
		}
		logger.Info("seeded SMTP settings from config",
			zap.String("host", current.SMTPHost))
	}
	if current.TelegramToken == "" && appCfg.TelegramToken != "" {
		current.TelegramToken = appCfg.TelegramToken
		current.TelegramChatID = appCfg.TelegramChatID
		current.ID = models.SettingsGlobalID
		if err := settings.Put(ctx, current); err != nil {
			return fmt.Errorf("seed Telegram settings: %w", err)
		}
		logger.Info("seeded Telegram settings from config")
	}

	outboxWorker = workers.NewOutboxDispatch(
		outboxstore.New(deps.MongoDatabase),
		settings,
		logger,
		appCfg.OutboxPollInterval,
	)
	outboxWorker.Start()

	return nil
}
