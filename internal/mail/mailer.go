// AngelaMos | 2026
// mailer.go

// Package mail delivers verification emails. Sends are best-effort side
// effects: callers log failures and never roll back on them.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/carterperez-dev/contacts-api/internal/config"
)

type Sender interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
}

type ResendSender struct {
	client  *resend.Client
	sender  string
	baseURL string
}

func NewResendSender(cfg config.MailConfig, baseURL string) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(cfg.APIKey),
		sender:  cfg.Sender,
		baseURL: baseURL,
	}
}

func (s *ResendSender) SendVerificationEmail(
	ctx context.Context,
	to, token string,
) error {
	link := verificationLink(s.baseURL, token)

	params := &resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{to},
		Subject: "Verify your email",
		Html: fmt.Sprintf(
			`<p>Welcome! Please <a href="%s">verify your email</a> to activate your account.</p>`,
			link,
		),
		Text: fmt.Sprintf(
			"Welcome! Open this link to verify your email: %s",
			link,
		),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	return nil
}

// LogSender is the development fallback used when mail delivery is disabled:
// it logs the verification link instead of sending it.
type LogSender struct {
	logger  *slog.Logger
	baseURL string
}

func NewLogSender(logger *slog.Logger, baseURL string) *LogSender {
	return &LogSender{
		logger:  logger,
		baseURL: baseURL,
	}
}

func (s *LogSender) SendVerificationEmail(
	_ context.Context,
	to, token string,
) error {
	s.logger.Info("verification email (mail disabled)",
		"to", to,
		"link", verificationLink(s.baseURL, token),
	)
	return nil
}

func verificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/api/auth/verify/%s", baseURL, token)
}
