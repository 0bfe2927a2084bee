package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(ctx context.Context, to string, subject string, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

type WhatsAppMock struct{ mock.Mock }

func (m *WhatsAppMock) Send(ctx context.Context, phone string, body string) error {
	args := m.Called(ctx, phone, body)
	return args.Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

// email_logsのインメモリ版。pending→終端の順序検証に使う
type EmailLogStore struct {
	mu   sync.Mutex
	rows map[int64]*model.EmailLog
	//起きたことを順番に記録する（"pending:admin_notify" など）
	events []string
}

func NewEmailLogStore() *EmailLogStore {
	return &EmailLogStore{rows: map[int64]*model.EmailLog{}}
}

func (s *EmailLogStore) Create(ctx context.Context, log model.EmailLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.rows) + 1)
	log.ID = id
	s.rows[id] = &log
	s.events = append(s.events, "pending:"+string(log.Channel))
	return id, nil
}

func (s *EmailLogStore) MarkSent(ctx context.Context, logID int64, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[logID]
	row.Status = model.EmailLogStatusSent
	row.SentAt = &sentAt
	s.events = append(s.events, "sent:"+string(row.Channel))
	return nil
}

func (s *EmailLogStore) MarkFailed(ctx context.Context, logID int64, errDetail string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[logID]
	row.Status = model.EmailLogStatusFailed
	row.Error = errDetail
	row.SentAt = &at
	s.events = append(s.events, "failed:"+string(row.Channel))
	return nil
}

func (s *EmailLogStore) ListByOrderID(ctx context.Context, orderID int64) ([]model.EmailLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.EmailLog{}
	for _, r := range s.rows {
		if r.OrderID == orderID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *EmailLogStore) byChannel(ch model.EmailChannel) []model.EmailLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.EmailLog{}
	for _, r := range s.rows {
		if r.Channel == ch {
			out = append(out, *r)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOrder() model.Order {
	return model.Order{
		ID:            10,
		OrderNumber:   "RH-ABC123",
		CustomerName:  "Carlos Rondón",
		CustomerPhone: "+584141112233",
		CustomerEmail: "carlos@example.com",
		Address:       "Calle París, Las Mercedes",
		DeliveryZone:  "baruta",
		DeliveryCost:  decimal.NewFromFloat(3.00),
		Subtotal:      decimal.NewFromFloat(42.50),
		Total:         decimal.NewFromFloat(45.50),
		PaymentMethod: model.PaymentPagoMovil,
		Status:        model.OrderStatusPending,
		Items: []model.OrderItem{
			{Name: "Filtro de aceite", UnitPrice: decimal.NewFromFloat(18.50), Quantity: 1},
			{Name: "Bujía NGK", UnitPrice: decimal.NewFromFloat(12.00), Quantity: 2},
		},
	}
}

func TestOrderCreated_AllChannels(t *testing.T) {
	mailer := new(MailerMock)
	wa := new(WhatsAppMock)
	logs := NewEmailLogStore()

	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	wa.On("Send", mock.Anything, "+584141112233", mock.Anything).Return(nil)

	svc := notify.NewService(mailer, wa, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.OrderCreated(context.Background(), testOrder())

	//メール2通（お客様＋社内）とWhatsApp1通
	mailer.AssertNumberOfCalls(t, "Send", 2)
	wa.AssertNumberOfCalls(t, "Send", 1)

	//各チャネルでpending行が送信より先に書かれている
	assert.Equal(t, []string{
		"pending:customer_confirmation",
		"sent:customer_confirmation",
		"pending:admin_notify",
		"sent:admin_notify",
	}, logs.events)
}

func TestOrderCreated_EmailFailureIsIsolated(t *testing.T) {
	mailer := new(MailerMock)
	wa := new(WhatsAppMock)
	logs := NewEmailLogStore()

	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("resend: 429 too many requests"))
	wa.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := notify.NewService(mailer, wa, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.OrderCreated(context.Background(), testOrder())

	//メールが全滅してもWhatsAppは送られる
	wa.AssertNumberOfCalls(t, "Send", 1)

	//試行ごとにfailed行とエラー詳細が残る
	for _, ch := range []model.EmailChannel{
		model.EmailChannelCustomerConfirmation,
		model.EmailChannelAdminNotify,
	} {
		rows := logs.byChannel(ch)
		require.Len(t, rows, 1)
		assert.Equal(t, model.EmailLogStatusFailed, rows[0].Status)
		assert.Contains(t, rows[0].Error, "429")
	}
}

func TestOrderCreated_WhatsAppFailureLeavesNoEmailLogRow(t *testing.T) {
	mailer := new(MailerMock)
	wa := new(WhatsAppMock)
	logs := NewEmailLogStore()

	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	wa.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("whatsapp relay returned 500"))

	svc := notify.NewService(mailer, wa, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.OrderCreated(context.Background(), testOrder())

	//email_logsはメール2通分だけ。WhatsApp失敗は行を作らない
	assert.Len(t, logs.rows, 2)
	for _, r := range logs.rows {
		assert.Equal(t, model.EmailLogStatusSent, r.Status)
	}
}

func TestOrderCreated_NoEmailSkipsCustomerChannel(t *testing.T) {
	mailer := new(MailerMock)
	logs := NewEmailLogStore()

	mailer.On("Send", mock.Anything, "ventas@repuestohoy.com", mock.Anything, mock.Anything).Return(nil)

	o := testOrder()
	o.CustomerEmail = ""
	o.CustomerPhone = ""

	svc := notify.NewService(mailer, nil, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.OrderCreated(context.Background(), o)

	//社内メールだけ
	mailer.AssertNumberOfCalls(t, "Send", 1)
	assert.Len(t, logs.byChannel(model.EmailChannelAdminNotify), 1)
	assert.Empty(t, logs.byChannel(model.EmailChannelCustomerConfirmation))
}

func TestOrderCreated_PublishFailureIsIsolated(t *testing.T) {
	mailer := new(MailerMock)
	logs := NewEmailLogStore()
	pub := new(PublisherMock)

	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishEvent", mock.Anything, "orders.events", "RH-ABC123", mock.Anything).
		Return(errors.New("kafka: broker unreachable"))

	svc := notify.NewService(mailer, nil, pub, logs, "ventas@repuestohoy.com", "orders.events", testLogger())

	o := testOrder()
	o.CustomerPhone = ""
	svc.OrderCreated(context.Background(), o)

	pub.AssertNumberOfCalls(t, "PublishEvent", 1)
	//発行に失敗してもメールのログはsentのまま
	for _, r := range logs.rows {
		assert.Equal(t, model.EmailLogStatusSent, r.Status)
	}
}

func TestProofAttached_SendsAdminUpdateOnly(t *testing.T) {
	mailer := new(MailerMock)
	wa := new(WhatsAppMock)
	logs := NewEmailLogStore()

	mailer.On("Send", mock.Anything, "ventas@repuestohoy.com", mock.Anything, mock.Anything).Return(nil)

	o := testOrder()
	o.ProofURL = "https://cdn.example.com/proofs/p.jpg"
	o.Status = model.OrderStatusConfirmed

	svc := notify.NewService(mailer, wa, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.ProofAttached(context.Background(), o)

	//社内メールのみ。お客様メールもWhatsAppも出さない
	mailer.AssertNumberOfCalls(t, "Send", 1)
	wa.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)

	rows := logs.byChannel(model.EmailChannelAdminUpdate)
	require.Len(t, rows, 1)
	assert.Equal(t, model.EmailLogStatusSent, rows[0].Status)
}

func TestEmailContent(t *testing.T) {
	mailer := new(MailerMock)
	logs := NewEmailLogStore()

	var customerHTML, adminHTML string
	mailer.On("Send", mock.Anything, "carlos@example.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { customerHTML = args.String(3) }).
		Return(nil)
	mailer.On("Send", mock.Anything, "ventas@repuestohoy.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { adminHTML = args.String(3) }).
		Return(nil)

	o := testOrder()
	o.CustomerPhone = ""

	svc := notify.NewService(mailer, nil, nil, logs, "ventas@repuestohoy.com", "orders.events", testLogger())
	svc.OrderCreated(context.Background(), o)

	//お客様向け：明細・合計・迷惑メール注意
	assert.Contains(t, customerHTML, "RH-ABC123")
	assert.Contains(t, customerHTML, "Filtro de aceite")
	assert.Contains(t, customerHTML, "45.50")
	assert.Contains(t, customerHTML, "Spam o Promociones")

	//社内向け：comprobante未添付の警告
	assert.Contains(t, adminHTML, "Sin comprobante de pago")

	//comprobante付きならリンクになる
	o.ProofURL = "https://cdn.example.com/proofs/p.jpg"
	svc.ProofAttached(context.Background(), o)
	assert.Contains(t, adminHTML, "Ver comprobante")
	assert.Contains(t, adminHTML, o.ProofURL)
}
