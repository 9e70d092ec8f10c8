package notifier

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Notifier delivers a rendered notification somewhere a human sees it.
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs notifications; the default when no mail provider is
// configured.
type ConsoleNotifier struct {
	log *zap.Logger
}

func NewConsole(log *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	c.log.Info("notification", zap.String("subject", subject), zap.String("message", message))
	return nil
}

// EmailNotifier sends notifications through SendGrid to a fixed operations
// inbox.
type EmailNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

func NewEmail(apiKey, fromAddr, toAddr string) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Meeting Rooms", fromAddr),
		to:     mail.NewEmail("", toAddr),
	}
}

func (e *EmailNotifier) Notify(subject, message string) error {
	m := mail.NewSingleEmail(e.from, subject, e.to, message, message)
	resp, err := e.client.Send(m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}

// HumanTimeRange renders a unix-seconds slot for message bodies.
func HumanTimeRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).Local()
	et := time.Unix(endUnix, 0).Local()
	return fmt.Sprintf("%s to %s", st.Format("2006-01-02 15:04"), et.Format("15:04"))
}
