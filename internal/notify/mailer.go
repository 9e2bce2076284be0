// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package notify delivers account mail. SMTPMailer speaks to a real relay;
// LogMailer writes to the log for development setups without one.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/cinedex/cinedex/internal/auth"
)

const (
	// mailBackoffBase is the initial delay between delivery attempts.
	mailBackoffBase = 250 * time.Millisecond

	// mailMaxRetries bounds retries after the first attempt.
	mailMaxRetries = 3
)

// sendFunc matches smtp.SendMail so delivery can be faked in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers password reset tokens over SMTP. Transient delivery
// failures are retried with fibonacci backoff; the caller decides whether a
// final failure is fatal.
type SMTPMailer struct {
	addr    string
	from    string
	auth    smtp.Auth
	send    sendFunc
	retries uint64
	backoff time.Duration
	logger  *slog.Logger
}

// NewSMTPMailer creates a mailer for the given relay. An empty username
// skips authentication, which is what local development relays expect.
// A nil logger falls back to slog.Default.
func NewSMTPMailer(host string, port int, username, password, from string, logger *slog.Logger) *SMTPMailer {
	var a smtp.Auth
	if username != "" {
		a = smtp.PlainAuth("", username, password, host)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		addr:    fmt.Sprintf("%s:%d", host, port),
		from:    from,
		auth:    a,
		send:    smtp.SendMail,
		retries: mailMaxRetries,
		backoff: mailBackoffBase,
		logger:  logger,
	}
}

// SendPasswordReset mails the plaintext reset token to the address.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	msg := buildResetMessage(m.from, email, token)

	attempt := 0
	backoff := retry.WithMaxRetries(m.retries, retry.NewFibonacci(m.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := m.send(m.addr, m.auth, m.from, []string{email}, msg); err != nil {
			m.logger.WarnContext(ctx, "password reset mail attempt failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("operation", "send password reset").
			With("attempts", attempt).
			Wrap(err)
	}

	return nil
}

// buildResetMessage assembles the RFC 5322 message. SMTP requires CRLF line
// endings throughout.
func buildResetMessage(from, to, token string) []byte {
	minutes := int(auth.ResetTokenExpiry.Minutes())

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString("Subject: Reset your Cinedex password\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("A password reset was requested for this address.\r\n")
	b.WriteString("\r\n")
	b.WriteString(fmt.Sprintf("Use this code within %d minutes to set a new password:\r\n", minutes))
	b.WriteString("\r\n")
	b.WriteString(fmt.Sprintf("    %s\r\n", token))
	b.WriteString("\r\n")
	b.WriteString("The code works once. If you did not request a reset, ignore this mail.\r\n")

	return []byte(b.String())
}

// LogMailer writes reset tokens to the log instead of delivering them.
// Development only: tokens in logs defeat the point of hashing them at rest.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer. A nil logger falls back to slog.Default.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the token at info level and always succeeds.
func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.logger.InfoContext(ctx, "password reset token issued",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}

var (
	_ auth.Mailer = (*SMTPMailer)(nil)
	_ auth.Mailer = (*LogMailer)(nil)
)
