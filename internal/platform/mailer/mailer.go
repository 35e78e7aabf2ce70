// Package mailer implements the notification.Notifier interface over
// SMTP, rendering embedded text templates for the message bodies.
package mailer

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/hrsys/candidate-api/internal/config"
	"github.com/hrsys/candidate-api/internal/notification"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Mailer sends notification messages through an SMTP server.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	templates *template.Template
	logger    *slog.Logger
}

// New creates a Mailer from the SMTP configuration. It parses the
// embedded templates eagerly so a malformed template fails at startup
// rather than on first send. A nil logger falls back to the default.
func New(cfg config.SMTPConfig, logger *slog.Logger) (*Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	templates, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		templates: templates,
		logger:    logger.With(slog.String("component", "mailer")),
	}, nil
}

var _ notification.Notifier = (*Mailer)(nil)

// Send implements notification.Notifier.Send. The context map is passed
// to the template named by msg.Template; the recipient name is added
// under "recipient_name" when present, mirroring how callers populate
// the rest of the context.
func (m *Mailer) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := make(map[string]string, len(msg.Context)+1)
	for k, v := range msg.Context {
		data[k] = v
	}
	if msg.RecipientName != "" {
		data["recipient_name"] = msg.RecipientName
	}

	var body strings.Builder
	if err := m.templates.ExecuteTemplate(&body, msg.Template+".txt", data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", msg.Template, err)
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	if msg.RecipientName != "" {
		mail.SetAddressHeader("To", msg.RecipientEmail, msg.RecipientName)
	} else {
		mail.SetHeader("To", msg.RecipientEmail)
	}
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", body.String())

	if err := m.dialer.DialAndSend(mail); err != nil {
		m.logger.Error("failed to send email",
			slog.String("template", msg.Template),
			slog.String("recipient", msg.RecipientEmail),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent",
		slog.String("template", msg.Template),
		slog.String("recipient", msg.RecipientEmail),
		slog.String("subject", msg.Subject))
	return nil
}
