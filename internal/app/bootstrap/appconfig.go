// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// TimeZone is the IANA name of the kitchens' local time zone. Civil
	// dates (worklists, due-today) are computed in this zone, not UTC.
	TimeZone string
	Location *time.Location

	// Fallback SMTP configuration used when the notification settings
	// document has no SMTP host yet. Admins normally manage delivery
	// settings from the settings page; these values seed a fresh
	// deployment.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string

	// Telegram fallback, same role as the mail fallback above.
	TelegramToken  string
	TelegramChatID string

	// OutboxPollInterval is how often the dispatch worker drains
	// pending notifications.
	OutboxPollInterval time.Duration
}
