package mail

import (
	"bytes"
	"errors"
	"fmt"
	netmail "net/mail"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"money-tracker-go/internal/config"
	"money-tracker-go/pkg/logger"
)

var (
	ErrDisabled         = errors.New("mail is not configured")
	ErrInvalidRecipient = errors.New("invalid recipient")
)

// Attachment is one exported file.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Report is a mail carrying exported files.
type Report struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type sendFunc func(message *email.Email, addr string, auth smtp.Auth) error

// Sender delivers reports over SMTP with PLAIN auth.
type Sender struct {
	cfg  config.MailConfig
	log  logger.Logger
	send sendFunc
}

func NewSender(cfg config.MailConfig, log logger.Logger) *Sender {
	return &Sender{
		cfg: cfg,
		log: log,
		send: func(message *email.Email, addr string, auth smtp.Auth) error {
			return message.Send(addr, auth)
		},
	}
}

func (s *Sender) Enabled() bool {
	return s != nil && s.cfg.Enabled()
}

func (s *Sender) SendReport(report Report) error {
	if !s.Enabled() {
		return ErrDisabled
	}

	message, err := s.buildMessage(report)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(message, addr, auth); err != nil {
		s.log.InternalError("mail.send: failed to send report", err, "to", report.To)
		return fmt.Errorf("failed to send report: %w", err)
	}

	s.log.Info("mail.send: report sent", "to", report.To, "attachments", len(report.Attachments))
	return nil
}

func (s *Sender) buildMessage(report Report) (*email.Email, error) {
	to, err := netmail.ParseAddress(strings.TrimSpace(report.To))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecipient, report.To)
	}

	message := email.NewEmail()
	message.From = s.cfg.SenderEmail
	message.To = []string{to.Address}
	message.Subject = report.Subject
	if message.Subject == "" {
		message.Subject = "Money Tracker report"
	}
	message.Text = []byte(report.Body)

	for _, attachment := range report.Attachments {
		if _, err := message.Attach(bytes.NewReader(attachment.Content), attachment.Filename, attachment.ContentType); err != nil {
			return nil, fmt.Errorf("attach %s: %w", attachment.Filename, err)
		}
	}
	return message, nil
}
