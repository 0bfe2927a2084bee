package model

import "time"

// 通知の種類
type EmailChannel string

const (
	//お客様向けの注文確認メール
	EmailChannelCustomerConfirmation EmailChannel = "customer_confirmation"

	//社内向けの新規注文通知
	EmailChannelAdminNotify EmailChannel = "admin_notify"

	//comprobante添付後の社内向け再通知
	EmailChannelAdminUpdate EmailChannel = "admin_update"
)

type EmailLogStatus string

const (
	EmailLogStatusPending EmailLogStatus = "pending"
	EmailLogStatusSent    EmailLogStatus = "sent"
	EmailLogStatusFailed  EmailLogStatus = "failed"
)

// メール送信の監査ログ。1回の送信試行につき1行。
// 送信前に pending で書き、結果で sent / failed に更新する。
// それ以外のコンポーネントは更新も削除もしない。
type EmailLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64          `gorm:"not null;index" json:"order_id"`
	Channel   EmailChannel   `gorm:"type:varchar(50);not null;index" json:"channel"`
	Recipient string         `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject   string         `gorm:"type:varchar(255);not null" json:"subject"`
	Status    EmailLogStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Error     string         `gorm:"type:text" json:"error"`
	SentAt    *time.Time     `json:"sent_at"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
