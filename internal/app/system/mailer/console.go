// internal/app/system/mailer/console.go
package mailer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConsoleSender logs messages instead of delivering them. It is the dev
// default and doubles as a recording sender in tests.
type ConsoleSender struct {
	log *zap.Logger

	mu   sync.Mutex
	sent []Email
}

func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: logger}
}

// Send records the message and logs it.
func (s *ConsoleSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sent = append(s.sent, Email{To: to, Subject: subject, HTMLBody: htmlBody})
	s.mu.Unlock()

	s.log.Info("email (console)",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// Sent returns a copy of everything sent so far.
func (s *ConsoleSender) Sent() []Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Email, len(s.sent))
	copy(out, s.sent)
	return out
}
