package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"meal-together/notify-svc/internal/domain"
)

type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	Addr     string
	From     string
	Auth     smtp.Auth
	SendMail SendFunc
	Now      func() time.Time
}

// NewSMTPMailer uses PLAIN auth when user is set and an unauthenticated relay otherwise.
func NewSMTPMailer(addr, from, user, password string) *SMTPMailer {
	m := &SMTPMailer{Addr: addr, From: from, SendMail: smtp.SendMail, Now: time.Now}
	if user != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		m.Auth = smtp.PlainAuth("", user, password, host)
	}
	return m
}

// Send delivers one message to all recipients. net/smtp takes no context, so ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.SendMail(m.Addr, m.Auth, m.From, email.To, m.message(email)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) message(email domain.Email) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", m.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	return buf.Bytes()
}
