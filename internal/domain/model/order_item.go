package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点のスナップショット。商品マスタが後で変わっても明細は変わらない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
