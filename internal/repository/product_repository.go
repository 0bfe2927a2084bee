package repository

import (
	"context"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
)

type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//公開中の商品だけ
	ListActive(ctx context.Context) ([]model.Product, error)

	//管理者用（非公開も含む）
	ListAdmin(ctx context.Context, page int, limit int) ([]model.Product, int64, error)

	//価格・在庫・公開フラグの更新
	Update(ctx context.Context, p model.Product) error
}
