// Package mail renders verification emails and hands them to a sender.
// LogSender writes messages to the log instead of delivering them.
package mail

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/core/ports"
)

const verificationSubject = "Verify your email"

var verificationBody = template.Must(template.New("verify").Parse(
	`Hello {{.Name}},

Please verify your email address by visiting the link below:

{{.Link}}

If you did not create an account you can ignore this message.
`))

// VerificationRenderer builds verification messages pointing at baseURL.
type VerificationRenderer struct {
	baseURL string
}

func NewVerificationRenderer(baseURL string) *VerificationRenderer {
	return &VerificationRenderer{baseURL: strings.TrimRight(baseURL, "/")}
}

// Link returns the verification URL for userID and token.
func (r *VerificationRenderer) Link(userID, token string) string {
	return r.baseURL + "/verify-email/" + url.PathEscape(userID) + "/" + url.PathEscape(token)
}

func (r *VerificationRenderer) Render(v ports.VerificationEmail) ports.Email {
	name := v.Nickname
	if name == "" {
		name = v.Email
	}

	var body bytes.Buffer
	// the template only references fields of the struct below
	_ = verificationBody.Execute(&body, struct{ Name, Link string }{name, r.Link(v.UserID, v.Token)})

	return ports.Email{To: v.Email, Subject: verificationSubject, Body: body.String()}
}

// LogSender logs outgoing messages.
type LogSender struct {
	from string
	log  zerolog.Logger
}

func NewLogSender(from string, log zerolog.Logger) *LogSender {
	return &LogSender{from: from, log: log}
}

func (s *LogSender) Send(_ context.Context, msg ports.Email) error {
	s.log.Info().
		Str("from", s.from).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email sent")
	return nil
}
