package usecase

import (
	"context"
	"net/http"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"
)

// ストアフロント向けの公開商品一覧
type ProductUsecase struct {
	products repo.ProductRepository
}

func NewProductUsecase(products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{products: products}
}

func (u *ProductUsecase) ListActive(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.ListActive(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
