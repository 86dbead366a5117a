/*
Package email delivers leave notifications over SMTP.

PURPOSE:
  Implements leave.Notifier against a plain SMTP server with optional
  STARTTLS and auth. When email is disabled or unconfigured, New returns
  the engine's no-op notifier so callers never branch on configuration.

DELIVERY SEMANTICS:
  The engine treats notification delivery as fire-and-forget: errors
  returned here are logged by the lifecycle service and discarded. Nothing
  in this package retries.
*/
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/block8/leave-engine/config"
	"github.com/block8/leave-engine/leave"
)

type smtpNotifier struct {
	cfg config.Config
}

// New returns an SMTP-backed notifier, or leave.Noop when email is
// disabled or no host is configured.
func New(cfg config.Config) leave.Notifier {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return leave.Noop{}
	}
	return &smtpNotifier{cfg: cfg}
}

func (n *smtpNotifier) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	msg := buildMessage(n.cfg.SMTPFrom, to, subject, body)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if n.cfg.SMTPUseTLS {
		tlsConfig := &tls.Config{ServerName: n.cfg.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if n.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(n.cfg.SMTPFrom); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + body)
}
