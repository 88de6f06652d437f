// internal/app/compliance/escalate/escalate.go
//
// Package escalate turns a violation alert into queued notifications.
// It decides who hears about an alert and renders the messages; actual
// delivery happens later from the outbox.
package escalate

import (
	"fmt"
	"time"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

// EmailRecipients returns the users who should receive the alert by
// email: opted in, with an address, and with the alert's facility in
// their scope.
func EmailRecipients(users []models.User, facilityID string) []models.User {
	var out []models.User
	for i := range users {
		u := users[i]
		if !u.EmailAlerts || u.Email == "" {
			continue
		}
		if !u.CoversFacility(facilityID) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// ChatWanted reports whether the shared chat channel should carry the
// alert. One message goes out when at least one opted-in user covers
// the facility; the channel is shared, so it is never sent per user.
func ChatWanted(users []models.User, facilityID string) bool {
	for i := range users {
		u := &users[i]
		if u.ChatAlerts && u.CoversFacility(facilityID) {
			return true
		}
	}
	return false
}

// Subject renders the email subject line for an alert.
func Subject(a *models.Alert) string {
	return fmt.Sprintf("Temperaturalarm: %s / %s", a.FacilityName, a.TargetName)
}

// Body renders the plain-text message shared by both channels.
func Body(a *models.Alert) string {
	return fmt.Sprintf(
		"Temperaturalarm\n\nEinrichtung: %s\nMesspunkt: %s (%s)\nGemessen: %.1f °C\nZulässig: %.1f bis %.1f °C\nGemeldet von: %s\nZeitpunkt: %s\n",
		a.FacilityName, a.TargetName, a.CheckpointName,
		a.Value, a.Min, a.Max,
		a.UserName, a.Timestamp.Format("02.01.2006 15:04"),
	)
}

// Fanout builds the outbox entries for an alert. Tokens are derived
// from the alert id, so enqueueing the same fan-out twice collides on
// the unique token index instead of duplicating sends. A channel whose
// configuration is blank is skipped without error.
func Fanout(a *models.Alert, users []models.User, settings *models.NotificationSettings, now time.Time) []models.OutboxEntry {
	var entries []models.OutboxEntry

	if settings.EmailConfigured() {
		for _, u := range EmailRecipients(users, a.FacilityID) {
			entries = append(entries, models.OutboxEntry{
				Token:     fmt.Sprintf("%s:email:%s", a.ID.Hex(), u.Email),
				Kind:      models.OutboxEmail,
				Recipient: u.Email,
				Subject:   Subject(a),
				Body:      Body(a),
				Status:    models.OutboxPending,
				CreatedAt: now,
			})
		}
	}

	if settings.TelegramConfigured() && ChatWanted(users, a.FacilityID) {
		entries = append(entries, models.OutboxEntry{
			Token:     fmt.Sprintf("%s:telegram", a.ID.Hex()),
			Kind:      models.OutboxTelegram,
			Body:      Body(a),
			Status:    models.OutboxPending,
			CreatedAt: now,
		})
	}

	return entries
}
