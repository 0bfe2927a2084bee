package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type Clock interface {
	Now() time.Time
}

// 通知のファンアウト。失敗しても注文を失敗させないのでエラーは返ってこない。
type Notifier interface {
	OrderCreated(ctx context.Context, o model.Order)
	ProofAttached(ctx context.Context, o model.Order)
}

type OrderUsecase struct {
	orders   repo.OrderRepository
	notifier Notifier
	clock    Clock

	//支払い方法ごとのcomprobante必須フラグ
	proofRequired map[model.PaymentMethod]bool
}

// proofOptional=true でデプロイ中のUI挙動（comprobante任意）に合わせる。
func NewOrderUsecase(orders repo.OrderRepository, notifier Notifier, clock Clock, proofOptional bool) *OrderUsecase {
	required := map[model.PaymentMethod]bool{
		model.PaymentPagoMovil: !proofOptional,
		model.PaymentZelle:     !proofOptional,
		model.PaymentEfectivo:  false,
	}
	return &OrderUsecase{
		orders:        orders,
		notifier:      notifier,
		clock:         clock,
		proofRequired: required,
	}
}

type OrderItemInput struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Items []OrderItemInput

	//金額はクライアント計算値を信頼してそのまま保存する
	Subtotal     decimal.Decimal
	DeliveryCost decimal.Decimal
	Total        decimal.Decimal

	DeliveryZone  string
	Address       string
	PaymentMethod string
	Notes         string
	ProofURL      string
}

type CreateOrderOutput struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	//必須項目。どれか欠けたら副作用ゼロで弾く
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" ||
		strings.TrimSpace(in.Address) == "" ||
		strings.TrimSpace(in.DeliveryZone) == "" ||
		strings.TrimSpace(in.PaymentMethod) == "" {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if len(in.Items) == 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "order has no items")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item quantity")
		}
	}

	if _, ok := model.FindDeliveryZone(in.DeliveryZone); !ok {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery zone")
	}
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}
	method := model.PaymentMethod(in.PaymentMethod)

	//支払い方法によってはcomprobanteが作成時点で必須
	if u.proofRequired[method] && strings.TrimSpace(in.ProofURL) == "" {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("proof of payment is required for %s", method.Label()))
	}

	//入力の問題とサーバー構成の問題はエラークラスで区別する
	if u.orders == nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "database not configured")
	}

	now := u.clock.Now()

	status := model.OrderStatusPending
	var proofAt *time.Time
	if in.ProofURL != "" {
		status = model.OrderStatusConfirmed
		t := now
		proofAt = &t
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	order := model.Order{
		OrderNumber:     orderNumber(now),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		Address:         strings.TrimSpace(in.Address),
		DeliveryZone:    in.DeliveryZone,
		DeliveryCost:    in.DeliveryCost,
		Subtotal:        in.Subtotal,
		Total:           in.Total,
		PaymentMethod:   method,
		ProofURL:        in.ProofURL,
		ProofUploadedAt: proofAt,
		Status:          status,
		Notes:           in.Notes,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.orders.Create(ctx, &order); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return CreateOrderOutput{}, NewHTTPError(http.StatusConflict, "duplicate order number")
		}
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//通知はベストエフォート。結果はレスポンスに影響しない
	u.notifier.OrderCreated(ctx, order)

	return CreateOrderOutput{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
	}, nil
}

// AttachProof は既存注文へのcomprobante後付け。
// ステータスはconfirmedに寄せて、社内メールを再送する。
func (u *OrderUsecase) AttachProof(ctx context.Context, orderID int64, proofURL string) (model.Order, error) {
	if orderID <= 0 || strings.TrimSpace(proofURL) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if u.orders == nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "database not configured")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	if err := u.orders.UpdateProof(ctx, orderID, proofURL, now, model.OrderStatusConfirmed); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.ProofURL = proofURL
	o.ProofUploadedAt = &now
	o.Status = model.OrderStatusConfirmed

	u.notifier.ProofAttached(ctx, o)

	return o, nil
}

// 注文番号はタイムスタンプのbase36にストアコードを付けたもの。
// 想定の注文量ではミリ秒精度で十分衝突しない。
func orderNumber(t time.Time) string {
	return "RH-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
