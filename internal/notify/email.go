package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

const defaultFromName = "Appointment Assistant"

// ErrEmailNotConfigured is returned by a sender built without a client.
var ErrEmailNotConfigured = errors.New("notify: email sender not configured")

// EmailSender delivers one appointment email.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is an appointment email. Category is the notification type
// and is attached as a provider tag for delivery reporting.
type EmailMessage struct {
	To            string
	ToName        string
	Subject       string
	Body          string
	Category      string
	AppointmentID string
}

// HTML renders Body as escaped paragraphs.
func (m EmailMessage) HTML() string {
	var b strings.Builder
	for _, para := range strings.Split(strings.TrimSpace(m.Body), "\n\n") {
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

type fromAddress struct {
	name  string
	email string
}

func newFromAddress(name, email string) fromAddress {
	if strings.TrimSpace(name) == "" {
		name = defaultFromName
	}
	return fromAddress{name: name, email: email}
}

func (f fromAddress) String() string {
	return fmt.Sprintf("%s <%s>", f.name, f.email)
}

// SendGridSender delivers through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   fromAddress
	logger *logging.Logger
}

// SendGridConfig holds SendGrid credentials and the sender identity.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   newFromAddress(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// Send implements EmailSender.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.from.name, s.from.email),
		msg.Subject,
		mail.NewEmail(msg.ToName, msg.To),
		msg.Body,
		msg.HTML(),
	)
	if msg.Category != "" {
		message.AddCategories(msg.Category)
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid send: status %d", response.StatusCode)
	}

	s.logger.Info("appointment email sent",
		"provider", "sendgrid",
		"appointment_id", msg.AppointmentID,
		"category", msg.Category,
		"status", response.StatusCode,
	)
	return nil
}

// StubEmailSender records messages instead of delivering them.
type StubEmailSender struct {
	logger *logging.Logger

	mu   sync.Mutex
	sent []EmailMessage
}

// NewStubEmailSender creates a recording sender.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send implements EmailSender.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.logger.Info("appointment email recorded", "provider", "stub", "appointment_id", msg.AppointmentID, "category", msg.Category)
	return nil
}

// Sent returns a copy of every recorded message.
func (s *StubEmailSender) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EmailMessage(nil), s.sent...)
}
