// Package mailer dispatches confirmation codes. The Sender interface is the
// seam the signup flow depends on; delivery failures are for the caller to
// log, never to fail a request on.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"artdb/pkg/utils"

	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, code string) error
}

// New picks the SMTP sender when a host is configured, otherwise the
// log sender used in development setups.
func New(cfg utils.EmailConfig, log *zap.Logger) Sender {
	if cfg.Host != "" {
		return &smtpSender{cfg: cfg}
	}
	return &logSender{log: log}
}

type smtpSender struct {
	cfg utils.EmailConfig
}

func (s *smtpSender) Send(ctx context.Context, to, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your confirmation code\r\n\r\nConfirmation code: %s\r\n",
		s.cfg.From, to, code,
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail to %s: %w", to, err)
	}
	return nil
}

// logSender prints codes to the log instead of mailing them.
type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(ctx context.Context, to, code string) error {
	s.log.Info("Confirmation code issued",
		zap.String("email", to),
		zap.String("code", code),
	)
	return nil
}
