package email

import (
	"context"
	"testing"
	"time"
)

// TestNoopSender verifies sends succeed with distinct IDs and no delivery.
func TestNoopSender(t *testing.T) {
	at := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := &NoopSender{now: func() time.Time { return at }}

	r, err := s.Send(context.Background(), SendRequest{To: []string{"admin@example.com"}, Subject: "Payroll"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !r.SentAt.Equal(at) || r.MessageID == "" {
		t.Errorf("Send() = %+v", r)
	}

	batch, err := s.SendBatch(context.Background(), []SendRequest{{Subject: "a"}, {Subject: "b"}})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if len(batch) != 2 || batch[0].MessageID == batch[1].MessageID {
		t.Errorf("SendBatch() = %+v, want two distinct IDs", batch)
	}
}

// TestResendSender_Params verifies defaults and attachment mapping.
func TestResendSender_Params(t *testing.T) {
	s := NewResendSender("re_test", "Payroll <payroll@example.com>", "office@example.com")
	p := s.params(SendRequest{
		To:          []string{"admin@example.com"},
		Subject:     "March payroll",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{Filename: "payroll.csv", ContentType: "text/csv", Content: []byte("a,b\n")}},
	})
	if p.From != "Payroll <payroll@example.com>" || p.ReplyTo != "office@example.com" {
		t.Errorf("defaults not applied: from %q reply-to %q", p.From, p.ReplyTo)
	}
	if len(p.Attachments) != 1 || p.Attachments[0].Filename != "payroll.csv" || string(p.Attachments[0].Content) != "a,b\n" {
		t.Errorf("attachments = %+v", p.Attachments)
	}

	own := s.params(SendRequest{From: "Coach Desk <coach@example.com>", ReplyTo: "ada@example.com"})
	if own.From != "Coach Desk <coach@example.com>" || own.ReplyTo != "ada@example.com" {
		t.Errorf("explicit addresses overridden: %+v", own)
	}
}
