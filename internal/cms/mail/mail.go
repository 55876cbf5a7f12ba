// Package mail delivers outgoing email for the CMS.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

var (
	ErrEmptyAPIKey    = errors.New("sendgrid api key is empty")
	ErrEmptyFrom      = errors.New("from address is empty")
	ErrEmptyRecipient = errors.New("to address is empty")
)

// sendWithContext is a seam for tests.
var sendWithContext = func(ctx context.Context, apiKey string, m *sgmail.SGMailV3) (*rest.Response, error) {
	return sendgrid.NewSendClient(apiKey).SendWithContext(ctx, m)
}

// SendGridSender implements Sender over the SendGrid v3 API.
type SendGridSender struct {
	apiKey   string
	from     string
	fromName string
	log      logging.Logger
}

func NewSendGridSender(apiKey, from, fromName string, log logging.Logger) *SendGridSender {
	return &SendGridSender{apiKey: apiKey, from: from, fromName: fromName, log: log}
}

func (s *SendGridSender) Send(ctx context.Context, m Message) error {
	if s.apiKey == "" {
		return ErrEmptyAPIKey
	}
	if s.from == "" {
		return ErrEmptyFrom
	}
	if m.To == "" {
		return ErrEmptyRecipient
	}

	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		m.Subject,
		sgmail.NewEmail("", m.To),
		m.Text,
		m.HTML,
	)

	resp, err := sendWithContext(ctx, s.apiKey, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}

	s.log.Debug(ctx, "mail sent", "status", resp.StatusCode, "subject", m.Subject)
	return nil
}

// LogSender only logs messages. It stands in when no API key is configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, m Message) error {
	s.log.Info(ctx, "mail delivery disabled, dropping message", "to", m.To, "subject", m.Subject)
	return nil
}
