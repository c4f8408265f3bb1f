package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/wesworld/site/internal/config"
	"github.com/wesworld/site/internal/model"
)

const (
	fromName    = "WesWorld Contact"
	sendTimeout = 15 * time.Second
)

// Notification is a plain-text email about one submission.
type Notification struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Transport delivers a composed notification.
type Transport interface {
	Deliver(ctx context.Context, n Notification) error
}

// Result reports whether a notification actually went out.
type Result struct {
	Sent bool
}

// Notifier relays contact submissions by email when SMTP is configured.
type Notifier struct {
	cfg       config.MailConfig
	transport Transport
}

// New returns a Notifier delivering over SMTP with cfg.
func New(cfg config.MailConfig) *Notifier {
	return NewWithTransport(cfg, &SMTPTransport{cfg: cfg})
}

// NewWithTransport returns a Notifier using the given transport.
func NewWithTransport(cfg config.MailConfig, t Transport) *Notifier {
	return &Notifier{cfg: cfg, transport: t}
}

// Enabled reports whether notifications will be attempted.
func (n *Notifier) Enabled() bool { return n.cfg.Configured() }

// Send emails a summary of sub to the configured recipient.
// Without host, user and password it returns Sent=false and does nothing.
func (n *Notifier) Send(ctx context.Context, sub model.ContactSubmission) (Result, error) {
	if !n.Enabled() {
		return Result{Sent: false}, nil
	}
	if err := n.transport.Deliver(ctx, Compose(n.cfg, sub)); err != nil {
		return Result{Sent: false}, fmt.Errorf("mailer: deliver: %w", err)
	}
	return Result{Sent: true}, nil
}

// Compose builds the notification for sub. The submitter's address is used
// as Reply-To so the inbox owner can answer directly.
func Compose(cfg config.MailConfig, sub model.ContactSubmission) Notification {
	phone := sub.Phone
	if phone == "" {
		phone = "N/A"
	}
	body := strings.Join([]string{
		"Name: " + sub.Name,
		"Email: " + sub.Email,
		"Phone: " + phone,
		"Service: " + sub.Service,
		"Message: " + sub.Message,
	}, "\n")

	return Notification{
		From:    cfg.User,
		To:      cfg.To,
		ReplyTo: sub.Email,
		Subject: "New WesWorld inquiry from " + sub.Name,
		Body:    body,
	}
}

// SMTPTransport sends notifications through an authenticated SMTP relay,
// upgrading with STARTTLS when the server offers it.
type SMTPTransport struct {
	cfg config.MailConfig
}

func (t *SMTPTransport) Deliver(ctx context.Context, n Notification) error {
	msg, err := BuildMessage(n)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.cfg.Host,
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.User),
		mail.WithPassword(t.cfg.Pass),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// BuildMessage converts n into a go-mail message.
func BuildMessage(n Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, n.From); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	if err := msg.ReplyTo(n.ReplyTo); err != nil {
		// Submitted addresses are not validated; send without Reply-To.
		slog.Warn("notification reply-to rejected", "reply_to", n.ReplyTo, "error", err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextPlain, n.Body)
	return msg, nil
}
