package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"
)

type Mailer interface {
	Send(ctx context.Context, to string, subject string, html string) error
}

type WhatsAppSender interface {
	Send(ctx context.Context, phone string, body string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// 注文イベント1件から通知をファンアウトする。
// 各チャネルは独立で、どのチャネルが失敗しても呼び出し元にエラーは返さない。
// メールの試行はemail_logsにpending→sent/failedで必ず記録する。
type Service struct {
	mailer     Mailer
	whatsapp   WhatsAppSender // nilならチャネル無効
	publisher  Publisher      // nilならpublishしない
	emailLogs  repo.EmailLogRepository
	adminEmail string
	topic      string
	timeout    time.Duration
	logger     *slog.Logger
}

func NewService(
	mailer Mailer,
	whatsapp WhatsAppSender,
	publisher Publisher,
	emailLogs repo.EmailLogRepository,
	adminEmail string,
	topic string,
	logger *slog.Logger,
) *Service {
	return &Service{
		mailer:     mailer,
		whatsapp:   whatsapp,
		publisher:  publisher,
		emailLogs:  emailLogs,
		adminEmail: adminEmail,
		topic:      topic,
		timeout:    8 * time.Second,
		logger:     logger,
	}
}

type orderEvent struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderCreated は注文確定後のファンアウト。
// 順序：お客様メール → 社内メール → WhatsApp → イベント発行。
func (s *Service) OrderCreated(ctx context.Context, o model.Order) {
	if o.CustomerEmail != "" {
		subject := fmt.Sprintf("Confirmación de pedido %s — RepuestoHoy", o.OrderNumber)
		s.sendEmail(ctx, o, model.EmailChannelCustomerConfirmation, o.CustomerEmail, subject, renderCustomerEmail)
	}

	subject := fmt.Sprintf("Nuevo pedido %s", o.OrderNumber)
	s.sendEmail(ctx, o, model.EmailChannelAdminNotify, s.adminEmail, subject, renderAdminEmail)

	if o.CustomerPhone != "" {
		s.sendWhatsApp(ctx, o)
	}

	s.publish(ctx, "order.created", o)
}

// ProofAttached はcomprobante添付後の再通知。社内メールのみ。
func (s *Service) ProofAttached(ctx context.Context, o model.Order) {
	subject := fmt.Sprintf("Comprobante recibido — %s", o.OrderNumber)
	s.sendEmail(ctx, o, model.EmailChannelAdminUpdate, s.adminEmail, subject, renderAdminEmail)

	s.publish(ctx, "order.proof_attached", o)
}

func (s *Service) sendEmail(
	ctx context.Context,
	o model.Order,
	channel model.EmailChannel,
	recipient string,
	subject string,
	render func(model.Order) (string, error),
) {
	//送信前に必ずpending行を書く
	logID, err := s.emailLogs.Create(ctx, model.EmailLog{
		OrderID:   o.ID,
		Channel:   channel,
		Recipient: recipient,
		Subject:   subject,
		Status:    model.EmailLogStatusPending,
	})
	if err != nil {
		s.logger.Error("email log write failed",
			slog.String("order", o.OrderNumber),
			slog.String("channel", string(channel)),
			slog.Any("error", err))
	}

	html, err := render(o)
	if err == nil {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err = s.mailer.Send(cctx, recipient, subject, html)
		cancel()
	}

	now := time.Now()
	if err != nil {
		s.logger.Error("email send failed",
			slog.String("order", o.OrderNumber),
			slog.String("channel", string(channel)),
			slog.Any("error", err))
		if logID != 0 {
			if lerr := s.emailLogs.MarkFailed(ctx, logID, err.Error(), now); lerr != nil {
				s.logger.Error("email log update failed", slog.Any("error", lerr))
			}
		}
		return
	}

	s.logger.Info("email sent",
		slog.String("order", o.OrderNumber),
		slog.String("channel", string(channel)),
		slog.String("to", recipient))
	if logID != 0 {
		if lerr := s.emailLogs.MarkSent(ctx, logID, now); lerr != nil {
			s.logger.Error("email log update failed", slog.Any("error", lerr))
		}
	}
}

// WhatsAppはemail_logsには残さない（ログ出力のみ）。
func (s *Service) sendWhatsApp(ctx context.Context, o model.Order) {
	if s.whatsapp == nil {
		s.logger.Warn("whatsapp relay not configured, skipping",
			slog.String("order", o.OrderNumber))
		return
	}

	first := o.CustomerName
	if fields := strings.Fields(o.CustomerName); len(fields) > 0 {
		first = fields[0]
	}
	body := fmt.Sprintf(
		"¡Hola %s! 🙌 Gracias por tu pedido en RepuestoHoy. Tu número de orden es %s. "+
			"Por favor envíanos el comprobante de pago y un pin de tu ubicación para coordinar la entrega.",
		first, o.OrderNumber,
	)

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.whatsapp.Send(cctx, o.CustomerPhone, body); err != nil {
		s.logger.Error("whatsapp send failed",
			slog.String("order", o.OrderNumber),
			slog.Any("error", err))
		return
	}

	s.logger.Info("whatsapp sent",
		slog.String("order", o.OrderNumber),
		slog.String("to", o.CustomerPhone))
}

func (s *Service) publish(ctx context.Context, eventType string, o model.Order) {
	if s.publisher == nil {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ev := orderEvent{
		Type:        eventType,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Total:       o.Total.StringFixed(2),
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.PublishEvent(cctx, s.topic, o.OrderNumber, ev); err != nil {
		s.logger.Error("event publish failed",
			slog.String("order", o.OrderNumber),
			slog.String("type", eventType),
			slog.Any("error", err))
	}
}
