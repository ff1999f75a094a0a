package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"foodnow-api/config"

	"github.com/sirupsen/logrus"
)

// Message is a rendered email ready to hand to a transport
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers a rendered message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the transport named by MAIL_TRANSPORT
func NewMailer(cfg config.MailConfig, log logrus.FieldLogger) (Mailer, error) {
	switch strings.ToLower(cfg.Transport) {
	case "", "log":
		return &LogMailer{log: log}, nil
	case "smtp":
		return &SMTPMailer{
			Addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
			Host:     cfg.SMTPHost,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, nil
	case "amqp":
		m, err := DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.Transport)
	}
}

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	log logrus.FieldLogger
}

func NewLogMailer(log logrus.FieldLogger) *LogMailer { return &LogMailer{log: log} }

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
		"bytes":   len(msg.HTML),
	}).Info("email (log transport)")
	return nil
}

// SMTPMailer sends through a plain SMTP relay, authenticating when a username is set
type SMTPMailer struct {
	Addr     string
	Host     string
	Username string
	Password string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	return send(m.Addr, auth, msg.From, []string{msg.To}, buildMIME(msg))
}

func buildMIME(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
