package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/config"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/services/markdown"
)

// Notifier delivers workflow emails. Delivery is best-effort: callers log
// failures and continue, a lost email never fails the operation.
type Notifier interface {
	NotifyTicketAssigned(to string, t *ticket.Ticket, assignedByName string) error
	NotifyTicketResolved(to string, t *ticket.Ticket) error
	NotifyDeletionApproved(to string, ticketNumber, fileName, otpCode string) error
	NotifyDeletionRejected(to string, ticketNumber, fileName, reason string) error
}

// SMTPNotifier sends mail through gomail with markdown-rendered bodies.
type SMTPNotifier struct {
	cfg      *config.EmailConfig
	dialer   *gomail.Dialer
	markdown markdown.MarkdownService
	logger   logger.Interface
}

func NewSMTPNotifier(cfg *config.EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:      cfg,
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		markdown: markdown.NewMarkdownService(),
		logger:   logger.NewLogger().With("component", "notification.smtp"),
	}
}

func (n *SMTPNotifier) NotifyTicketAssigned(to string, t *ticket.Ticket, assignedByName string) error {
	subject := fmt.Sprintf("Ticket %s assigned to you", t.Number())

	descriptionHTML, err := n.markdown.ToHTMLSanitized(t.Description())
	if err != nil {
		descriptionHTML = ""
	}

	htmlBody := fmt.Sprintf(`<html><body>
<h2>Ticket %s</h2>
<p><strong>%s</strong> assigned this ticket to you.</p>
<p>Brand: %s<br>Priority: %s</p>
%s
</body></html>`, t.Number(), assignedByName, t.BrandName(), t.Priority().String(), descriptionHTML)

	plainBody := fmt.Sprintf(`Ticket %s

%s assigned this ticket to you.

Brand: %s
Priority: %s

%s
`, t.Number(), assignedByName, t.BrandName(), t.Priority().String(), t.Description())

	return n.send(to, subject, htmlBody, plainBody)
}

func (n *SMTPNotifier) NotifyTicketResolved(to string, t *ticket.Ticket) error {
	subject := fmt.Sprintf("Ticket %s has a resolution", t.Number())

	remarksHTML, err := n.markdown.ToHTMLSanitized(t.ResolutionRemarks())
	if err != nil {
		remarksHTML = ""
	}

	htmlBody := fmt.Sprintf(`<html><body>
<h2>Ticket %s</h2>
<p>A resolution was recorded. Review it and close or reopen the ticket.</p>
%s
</body></html>`, t.Number(), remarksHTML)

	plainBody := fmt.Sprintf(`Ticket %s

A resolution was recorded. Review it and close or reopen the ticket.

%s
`, t.Number(), t.ResolutionRemarks())

	return n.send(to, subject, htmlBody, plainBody)
}

func (n *SMTPNotifier) NotifyDeletionApproved(to string, ticketNumber, fileName, otpCode string) error {
	subject := fmt.Sprintf("Attachment deletion approved for ticket %s", ticketNumber)

	htmlBody := fmt.Sprintf(`<html><body>
<h2>Deletion approved</h2>
<p>Your request to delete <strong>%s</strong> on ticket %s was approved.</p>
<p>Confirm the deletion with this one-time code: <strong>%s</strong></p>
<p>The code expires in 10 minutes and can be used once.</p>
</body></html>`, fileName, ticketNumber, otpCode)

	plainBody := fmt.Sprintf(`Deletion approved

Your request to delete %s on ticket %s was approved.

Confirm the deletion with this one-time code: %s

The code expires in 10 minutes and can be used once.
`, fileName, ticketNumber, otpCode)

	return n.send(to, subject, htmlBody, plainBody)
}

func (n *SMTPNotifier) NotifyDeletionRejected(to string, ticketNumber, fileName, reason string) error {
	subject := fmt.Sprintf("Attachment deletion rejected for ticket %s", ticketNumber)

	htmlBody := fmt.Sprintf(`<html><body>
<h2>Deletion rejected</h2>
<p>Your request to delete <strong>%s</strong> on ticket %s was rejected.</p>
<p>Reason: %s</p>
</body></html>`, fileName, ticketNumber, reason)

	plainBody := fmt.Sprintf(`Deletion rejected

Your request to delete %s on ticket %s was rejected.

Reason: %s
`, fileName, ticketNumber, reason)

	return n.send(to, subject, htmlBody, plainBody)
}

func (n *SMTPNotifier) send(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.FromAddress, n.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Debugw("email sent", "to", to, "subject", subject)
	return nil
}

// NoopNotifier is used when email delivery is disabled.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) NotifyTicketAssigned(string, *ticket.Ticket, string) error { return nil }
func (n *NoopNotifier) NotifyTicketResolved(string, *ticket.Ticket) error         { return nil }
func (n *NoopNotifier) NotifyDeletionApproved(string, string, string, string) error {
	return nil
}
func (n *NoopNotifier) NotifyDeletionRejected(string, string, string, string) error {
	return nil
}
