// internal/app/system/mailer/templates.go
package mailer

import (
	"fmt"
	"html"
	"time"

	"github.com/bnomad/website/internal/domain/models"
)

// ContactNotification builds the email sent to the site admin when a
// visitor submits the contact form.
func ContactNotification(siteName string, sub models.ContactSubmission) Email {
	subject := fmt.Sprintf("[%s] New contact form message from %s", siteName, sub.Name)

	text := fmt.Sprintf(
		"New contact form submission\n\nName: %s\nEmail: %s\nSubject: %s\nLanguage: %s\nReceived: %s\n\n%s\n",
		sub.Name,
		sub.Email,
		orDash(sub.Subject),
		sub.Lang,
		sub.CreatedAt.Format(time.RFC1123),
		sub.Message,
	)

	htmlBody := fmt.Sprintf(`<h2>New contact form submission</h2>
<table cellpadding="4">
<tr><td><strong>Name</strong></td><td>%s</td></tr>
<tr><td><strong>Email</strong></td><td><a href="mailto:%s">%s</a></td></tr>
<tr><td><strong>Subject</strong></td><td>%s</td></tr>
<tr><td><strong>Language</strong></td><td>%s</td></tr>
<tr><td><strong>Received</strong></td><td>%s</td></tr>
</table>
<p style="white-space:pre-wrap">%s</p>`,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email),
		html.EscapeString(sub.Email),
		html.EscapeString(orDash(sub.Subject)),
		html.EscapeString(sub.Lang),
		sub.CreatedAt.Format(time.RFC1123),
		html.EscapeString(sub.Message),
	)

	return Email{
		Subject:  subject,
		TextBody: text,
		HTMLBody: htmlBody,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
