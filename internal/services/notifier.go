package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/internal/models"
	"github.com/wneessen/go-mail"
)

// Notifier announces a stored submission. A nil Notifier disables
// notifications.
type Notifier interface {
	Notify(ctx context.Context, r *models.SurveyResponse) error
}

// SMTPConfig describes the outbound mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.To) != ""
}

// SMTPNotifier emails the plain-text summary of each submission.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier validates cfg and returns a notifier for it.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("smtp host and recipient are required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.From) == "" {
		cfg.From = cfg.Username
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("smtp sender address is required")
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

func (n *SMTPNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTimeout(n.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	return mail.NewClient(n.cfg.Host, opts...)
}

func (n *SMTPNotifier) message(r *models.SurveyResponse) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(n.cfg.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	// The respondent address only has to contain "@", so Reply-To is left
	// unset when it does not parse as a mailbox.
	_ = msg.ReplyTo(r.Email)
	msg.Subject(SummarySubject(r))
	msg.SetBodyString(mail.TypeTextPlain, ComposeSummary(r))
	return msg, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, r *models.SurveyResponse) error {
	msg, err := n.message(r)
	if err != nil {
		return err
	}
	c, err := n.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
