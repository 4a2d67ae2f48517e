package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends without delivering them. Used when no Resend key is
// configured.
type NoopSender struct {
	now func() time.Time
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send logs the email but does not deliver it.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	at := s.now()
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject, "attachments", len(req.Attachments))
	return SendResult{MessageID: fmt.Sprintf("noop-%d", at.UnixNano()), SentAt: at}, nil
}

// SendBatch logs each email in the batch but does not deliver.
// POST: one result per request, in order
func (s *NoopSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for i, req := range reqs {
		r, _ := s.Send(ctx, req)
		r.MessageID = fmt.Sprintf("%s-%d", r.MessageID, i)
		results = append(results, r)
	}
	return results, nil
}
