package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品（自動車部品）。注文コアからは読み取り専用。
// 在庫・公開フラグの更新は管理APIだけが行う。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int64           `gorm:"not null" json:"stock"`
	IsActive    bool            `gorm:"not null;default:false" json:"is_active"`

	//適合車種
	VehicleBrand string `gorm:"type:varchar(100)" json:"vehicle_brand"`
	VehicleModel string `gorm:"type:varchar(100)" json:"vehicle_model"`
	YearFrom     int    `json:"year_from"`
	YearTo       int    `json:"year_to"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
