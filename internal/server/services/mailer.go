package services

import (
	"context"

	"github.com/fieldpass/fieldpass/internal/logging"
)

// Mailer delivers outbound mail. Actual delivery is an external collaborator;
// this repo only ships a logging implementation.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, email, name, code string) error
}

// LogMailer writes outbound mail to the log instead of sending it. Useful in
// development and tests.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) SendPasswordResetCode(ctx context.Context, email, name, code string) error {
	m.logger.Info(ctx, "password reset code issued", "email", email, "code", code)
	return nil
}
