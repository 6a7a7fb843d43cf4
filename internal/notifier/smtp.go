package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/rs/zerolog"
)

// SMTPConfig holds SMTP delivery settings.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string

	// Port is the SMTP server port. 465 means implicit TLS,
	// anything else is dialed plain and upgraded with STARTTLS.
	Port int

	// Username and Password authenticate against the server.
	// Username doubles as the envelope sender.
	Username string
	Password string

	// SenderName is the display name on outgoing mail.
	SenderName string

	// Timeout bounds the connection attempt.
	Timeout time.Duration
}

// SMTPNotifier delivers verification tokens by email over SMTP.
type SMTPNotifier struct {
	cfg    SMTPConfig
	auth   smtp.Auth
	logger zerolog.Logger
}

// NewSMTPNotifier creates an SMTPNotifier.
func NewSMTPNotifier(cfg SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPNotifier{
		cfg:    cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		logger: logger.With().Str("notifier", "smtp").Logger(),
	}
}

// Send delivers a verification token to the given email address.
func (n *SMTPNotifier) Send(ctx context.Context, email, token string) error {
	msg := n.buildMessage(email, token)
	address := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	// Port 465 = implicit TLS, otherwise STARTTLS.
	if n.cfg.Port == 465 {
		return n.sendImplicitTLS(address, email, msg)
	}
	return n.sendSTARTTLS(address, email, msg)
}

// sendImplicitTLS sends over a connection that is TLS from the start.
func (n *SMTPNotifier) sendImplicitTLS(address, recipient string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: n.cfg.Host}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: n.cfg.Timeout}, "tcp", address, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return n.sendViaClient(client, recipient, msg)
}

// sendSTARTTLS sends by upgrading a plain connection to TLS.
func (n *SMTPNotifier) sendSTARTTLS(address, recipient string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, n.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: n.cfg.Host}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return n.sendViaClient(client, recipient, msg)
}

// sendViaClient performs auth, sets sender/recipient, and sends the body.
func (n *SMTPNotifier) sendViaClient(client *smtp.Client, recipient string, msg []byte) error {
	if err := client.Auth(n.auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(n.cfg.Username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func (n *SMTPNotifier) buildMessage(recipient, token string) []byte {
	subject := mime.QEncoding.Encode("utf-8", "Verify your Filebridge account")
	senderName := mime.QEncoding.Encode("utf-8", n.cfg.SenderName)
	date := time.Now().Format(time.RFC1123Z)

	body := fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"Your verification token is below.\r\n\r\n"+
			"%s\r\n\r\n"+
			"If you did not register, please ignore this email.\r\n",
		token,
	)

	return fmt.Appendf(nil,
		"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		date, recipient, senderName, n.cfg.Username, subject, body,
	)
}

// Ensure SMTPNotifier implements Notifier.
var _ Notifier = (*SMTPNotifier)(nil)
