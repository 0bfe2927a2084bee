package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusEnRoute   OrderStatus = "en_route"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 管理画面から設定できるステータスかどうか。
// 遷移ガードは置かない（どのステータスからでも変更可）。
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusEnRoute,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentPagoMovil PaymentMethod = "pago_movil"
	PaymentZelle     PaymentMethod = "zelle"
	PaymentEfectivo  PaymentMethod = "efectivo"
)

func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentPagoMovil, PaymentZelle, PaymentEfectivo:
		return true
	}
	return false
}

// メールやWhatsAppで見せる表示名
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentPagoMovil:
		return "Pago Móvil"
	case PaymentZelle:
		return "Zelle"
	case PaymentEfectivo:
		return "Efectivo"
	}
	return string(m)
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//表示用の注文番号（RH-xxxx）。内部IDとは別物。
	OrderNumber string `gorm:"type:varchar(30);not null;uniqueIndex" json:"order_number"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(30);not null" json:"customer_phone"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`

	//配送先（自由入力）とゾーン
	Address      string          `gorm:"type:text;not null" json:"address"`
	DeliveryZone string          `gorm:"type:varchar(50);not null" json:"delivery_zone"`
	DeliveryCost decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"delivery_cost"`

	//金額はクライアント計算値をそのまま保存する（サーバー側で再計算しない）
	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	PaymentMethod   PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`
	ProofURL        string        `gorm:"type:text" json:"proof_url"`
	ProofUploadedAt *time.Time    `json:"proof_uploaded_at"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes  string      `gorm:"type:text" json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
