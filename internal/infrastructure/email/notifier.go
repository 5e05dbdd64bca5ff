// Package email delivers ticket-change notifications over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"worklog/internal/domain/tracker"
	sharedConfig "worklog/internal/shared/config"
	"worklog/internal/shared/logger"
)

// Notifier sends a mail to the configured notify address whenever the
// work log writes a change back to a ticket. With email disabled in the
// configuration it degrades to a no-op.
type Notifier struct {
	cfg    *sharedConfig.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

// NewNotifier creates a new Notifier
func NewNotifier(cfg *sharedConfig.EmailConfig, logger logger.Interface) *Notifier {
	n := &Notifier{cfg: cfg, logger: logger}
	if cfg.Enabled {
		n.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return n
}

// NotifyTicketChanged sends the change notification for a ticket save
func (n *Notifier) NotifyTicketChanged(ctx context.Context, t *tracker.Ticket, author, comment string) error {
	if n.dialer == nil || n.cfg.NotifyAddress == "" {
		n.logger.Debugw("email notifications disabled, skipping", "ticket", t.ID)
		return nil
	}

	subject := fmt.Sprintf("Ticket #%d changed: %s", t.ID, t.Summary)
	body := fmt.Sprintf(
		"Ticket #%d (%s) was changed by %s.\n\nStatus: %s\nOwner: %s\n\n%s\n",
		t.ID, t.Summary, author, t.Status, t.Owner, comment,
	)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromAddress, n.cfg.FromName)
	m.SetHeader("To", n.cfg.NotifyAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket change notification: %w", err)
	}

	n.logger.Debugw("ticket change notification sent", "ticket", t.ID, "to", n.cfg.NotifyAddress)
	return nil
}
