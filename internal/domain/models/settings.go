// internal/domain/models/settings.go
package models

// NotificationSettings is a singleton document (well-known _id
// "global") holding the deployment-wide delivery configuration. Blank
// fields disable the corresponding channel without being an error.
type NotificationSettings struct {
	ID string `bson:"_id" json:"id"`

	SMTPHost string `bson:"smtp_host" json:"smtp_host"`
	SMTPPort int    `bson:"smtp_port" json:"smtp_port"`
	SMTPUser string `bson:"smtp_user" json:"smtp_user"`
	SMTPPass string `bson:"smtp_pass" json:"-"`
	MailFrom string `bson:"mail_from" json:"mail_from"`

	TelegramToken  string `bson:"telegram_token" json:"-"`
	TelegramChatID string `bson:"telegram_chat_id" json:"telegram_chat_id"`
}

// SettingsGlobalID is the _id of the singleton settings document.
const SettingsGlobalID = "global"

// EmailConfigured reports whether the email channel can be used.
func (s *NotificationSettings) EmailConfigured() bool {
	return s.SMTPHost != "" && s.MailFrom != ""
}

// TelegramConfigured reports whether the chat channel can be used.
func (s *NotificationSettings) TelegramConfigured() bool {
	return s.TelegramToken != "" && s.TelegramChatID != ""
}
