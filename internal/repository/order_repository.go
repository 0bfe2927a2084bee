package repository

import (
	"context"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	//明細ごと保存してIDを埋める
	Create(ctx context.Context, order *model.Order) error

	//明細込みで取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//comprobanteの添付。ステータスも同時に更新する
	UpdateProof(ctx context.Context, orderID int64, proofURL string, uploadedAt time.Time, status model.OrderStatus) error

	//comprobanteの取り消し（アップロード削除時）
	ClearProof(ctx context.Context, orderID int64) error

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
