// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HACCP Hub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, time_zone, etc.
//   - Environment variables: HACCPHUB_MONGO_URI, HACCPHUB_TIME_ZONE, etc.
//   - Command-line flags: --mongo_uri, --time_zone, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "haccphub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Civil-date handling
	{Name: "time_zone", Default: "Europe/Berlin", Desc: "IANA time zone used for worklist dates"},

	// Email/SMTP fallback (the settings page overrides these at runtime)
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "", Desc: "From email address"},

	// Telegram fallback
	{Name: "telegram_token", Default: "", Desc: "Telegram bot token"},
	{Name: "telegram_chat_id", Default: "", Desc: "Telegram chat ID for the shared alerts channel"},

	// Notification dispatch
	{Name: "outbox_poll_interval", Default: "15s", Desc: "How often the outbox worker drains pending notifications (e.g., 15s, 1m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HACCPHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TimeZone: appValues.String("time_zone"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),

		TelegramToken:  appValues.String("telegram_token"),
		TelegramChatID: appValues.String("telegram_chat_id"),

		OutboxPollInterval: appValues.Duration("outbox_poll_interval", 15*time.Second),
	}

	loc, err := time.LoadLocation(appCfg.TimeZone)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid time_zone %q: %w", appCfg.TimeZone, err)
	}
	appCfg.Location = loc

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.OutboxPollInterval <= 0 {
		return fmt.Errorf("outbox_poll_interval must be positive, got %s", appCfg.OutboxPollInterval)
	}

	return nil
}
