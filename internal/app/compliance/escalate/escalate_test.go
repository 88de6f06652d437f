// internal/app/compliance/escalate/escalate_test.go
package escalate

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

func testAlert() *models.Alert {
	return &models.Alert{
		ID:             primitive.NewObjectID(),
		FacilityID:     "fac-1",
		FacilityName:   "Central Kitchen",
		TargetName:     "Walk-in",
		CheckpointName: "Core",
		Value:          -10,
		Min:            -25,
		Max:            -18,
		Timestamp:      time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC),
		UserName:       "Anna",
	}
}

func configured() *models.NotificationSettings {
	return &models.NotificationSettings{
		ID:             models.SettingsGlobalID,
		SMTPHost:       "smtp.example.com",
		SMTPPort:       587,
		MailFrom:       "haccp@example.com",
		TelegramToken:  "token",
		TelegramChatID: "-100123",
	}
}

func TestEmailRecipients(t *testing.T) {
	users := []models.User{
		{Name: "home", Email: "home@example.com", EmailAlerts: true, HomeFacilityID: "fac-1"},
		{Name: "manager", Email: "mgr@example.com", EmailAlerts: true, ManagedFacilityIDs: []string{"fac-1"}},
		{Name: "global", Email: "all@example.com", EmailAlerts: true, AllFacilitiesAlerts: true, HomeFacilityID: "fac-9"},
		{Name: "elsewhere", Email: "far@example.com", EmailAlerts: true, HomeFacilityID: "fac-2"},
		{Name: "opted out", Email: "out@example.com", EmailAlerts: false, HomeFacilityID: "fac-1"},
		{Name: "no address", Email: "", EmailAlerts: true, HomeFacilityID: "fac-1"},
	}

	got := EmailRecipients(users, "fac-1")
	if len(got) != 3 {
		t.Fatalf("got %d recipients, want 3", len(got))
	}
	want := map[string]bool{"home@example.com": true, "mgr@example.com": true, "all@example.com": true}
	for _, u := range got {
		if !want[u.Email] {
			t.Errorf("unexpected recipient %s", u.Email)
		}
	}
}

func TestChatWanted(t *testing.T) {
	cases := []struct {
		name  string
		users []models.User
		want  bool
	}{
		{"no users", nil, false},
		{"opted-in user at facility", []models.User{{ChatAlerts: true, HomeFacilityID: "fac-1"}}, true},
		{"opted-in user elsewhere", []models.User{{ChatAlerts: true, HomeFacilityID: "fac-2"}}, false},
		{"eligible but opted out", []models.User{{ChatAlerts: false, HomeFacilityID: "fac-1"}}, false},
		{"global scope", []models.User{{ChatAlerts: true, AllFacilitiesAlerts: true}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChatWanted(tc.users, "fac-1"); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFanout(t *testing.T) {
	alert := testAlert()
	users := []models.User{
		{Email: "a@example.com", EmailAlerts: true, ChatAlerts: true, HomeFacilityID: "fac-1"},
		{Email: "b@example.com", EmailAlerts: true, HomeFacilityID: "fac-1"},
	}

	entries := Fanout(alert, users, configured(), time.Now())
	var emails, chats int
	for _, e := range entries {
		switch e.Kind {
		case models.OutboxEmail:
			emails++
			if e.Recipient == "" || e.Subject == "" {
				t.Errorf("email entry missing recipient or subject: %+v", e)
			}
		case models.OutboxTelegram:
			chats++
		}
		if e.Status != models.OutboxPending {
			t.Errorf("entry status: got %s, want pending", e.Status)
		}
		if !strings.HasPrefix(e.Token, alert.ID.Hex()) {
			t.Errorf("token %q not derived from alert id", e.Token)
		}
	}
	if emails != 2 {
		t.Errorf("got %d email entries, want 2", emails)
	}
	if chats != 1 {
		t.Errorf("got %d chat entries, want exactly 1", chats)
	}
}

func TestFanoutDeterministicTokens(t *testing.T) {
	alert := testAlert()
	users := []models.User{{Email: "a@example.com", EmailAlerts: true, HomeFacilityID: "fac-1"}}

	first := Fanout(alert, users, configured(), time.Now())
	second := Fanout(alert, users, configured(), time.Now())
	if first[0].Token != second[0].Token {
		t.Errorf("tokens differ across fan-outs: %q vs %q", first[0].Token, second[0].Token)
	}
}

func TestFanoutSkipsUnconfiguredChannels(t *testing.T) {
	alert := testAlert()
	users := []models.User{
		{Email: "a@example.com", EmailAlerts: true, ChatAlerts: true, HomeFacilityID: "fac-1"},
	}

	entries := Fanout(alert, users, &models.NotificationSettings{ID: models.SettingsGlobalID}, time.Now())
	if len(entries) != 0 {
		t.Errorf("blank settings should skip both channels, got %d entries", len(entries))
	}

	emailOnly := configured()
	emailOnly.TelegramToken = ""
	entries = Fanout(alert, users, emailOnly, time.Now())
	for _, e := range entries {
		if e.Kind == models.OutboxTelegram {
			t.Error("telegram entry queued without telegram configuration")
		}
	}
}

func TestFanoutNoEligibleUsers(t *testing.T) {
	alert := testAlert()
	users := []models.User{
		{Email: "far@example.com", EmailAlerts: true, ChatAlerts: true, HomeFacilityID: "fac-2"},
	}

	entries := Fanout(alert, users, configured(), time.Now())
	if len(entries) != 0 {
		t.Errorf("no user covers the facility, want 0 entries, got %d", len(entries))
	}
}

func TestBodyMentionsRangeAndValue(t *testing.T) {
	body := Body(testAlert())
	for _, want := range []string{"Central Kitchen", "Walk-in", "-10.0", "-25.0", "-18.0", "Anna"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
