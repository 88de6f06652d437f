// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TestEmailData holds data for the settings-page test email.
type TestEmailData struct {
	SiteName string
	SentBy   string
}

// BuildTestEmail creates the probe email sent from the notification
// settings page to verify the SMTP configuration.
func BuildTestEmail(data TestEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("%s test email", data.SiteName),
		TextBody: buildTestText(data),
		HTMLBody: buildTestHTML(data),
	}
}

func buildTestText(data TestEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("This is a test email from %s.\n\n", data.SiteName))
	buf.WriteString(fmt.Sprintf("Requested by: %s\n\n", data.SentBy))
	buf.WriteString("If you received this message, the email notification settings are working.\n")
	return buf.String()
}

func buildTestHTML(data TestEmailData) string {
	tmpl := template.Must(template.New("test").Parse(testHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const testHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Test Email</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #16a34a;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                This is a test email. If you received this message, the email
                notification settings are working.
              </p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">
                Requested by: {{.SentBy}}
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
