package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Resendで送るメーラー。起動時に一度だけ生成してDIする。
type ResendMailer struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewResendMailer(apiKey string, from string, fromName string) *ResendMailer {
	return &ResendMailer{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (m *ResendMailer) Send(ctx context.Context, to string, subject string, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}

// RESEND_API_KEY未設定のときの代替。送信は常に失敗として記録される。
type DisabledMailer struct{}

func (DisabledMailer) Send(ctx context.Context, to string, subject string, html string) error {
	return errors.New("email provider not configured (RESEND_API_KEY missing)")
}
