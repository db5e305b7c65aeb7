package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/gmail/v1"
)

// GmailMailer sends campaign email as the authorized user.
type GmailMailer struct {
	svc      *gmail.Service
	fromName string
}

func NewGmailMailer(svc *gmail.Service, fromName string) *GmailMailer {
	return &GmailMailer{svc: svc, fromName: fromName}
}

// SenderAddress resolves the authorized account's email address.
func (m *GmailMailer) SenderAddress(ctx context.Context) (string, error) {
	profile, err := m.svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch gmail profile: %w", err)
	}
	return profile.EmailAddress, nil
}

// Send delivers a plain-text message, attaching ics as a text/calendar
// alternative part when non-empty. It returns the Gmail message id.
func (m *GmailMailer) Send(ctx context.Context, to, subject, body, ics string) (string, error) {
	from, err := m.SenderAddress(ctx)
	if err != nil {
		return "", err
	}

	raw := buildMessage(m.fromName, from, to, subject, body, ics)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return sent.Id, nil
}

// buildMessage assembles an RFC 5322 message. Calendar invites go out as
// multipart/alternative with a method=REQUEST calendar part so mail clients
// render the accept/decline banner.
func buildMessage(fromName, fromAddr, to, subject, body, ics string) string {
	var b strings.Builder

	write := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	if fromName != "" {
		write(fmt.Sprintf("From: %s <%s>", fromName, fromAddr))
	} else {
		write("From: " + fromAddr)
	}
	write("To: " + to)
	write("Subject: " + subject)
	write("MIME-Version: 1.0")

	if ics == "" {
		write(`Content-Type: text/plain; charset="UTF-8"`)
		write("")
		b.WriteString(body)
		return b.String()
	}

	boundary := "hiring-agent-" + uuid.NewString()
	write(fmt.Sprintf(`Content-Type: multipart/alternative; boundary="%s"`, boundary))
	write("")
	write("--" + boundary)
	write(`Content-Type: text/plain; charset="UTF-8"`)
	write("")
	write(body)
	write("--" + boundary)
	write(`Content-Type: text/calendar; method=REQUEST; charset="UTF-8"`)
	write("Content-Class: urn:content-classes:calendarmessage")
	write("")
	write(ics)
	write("--" + boundary + "--")
	return b.String()
}
