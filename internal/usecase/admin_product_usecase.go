package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type AdminProductUsecase struct {
	products repo.ProductRepository
}

func NewAdminProductUsecase(products repo.ProductRepository) *AdminProductUsecase {
	return &AdminProductUsecase{products: products}
}

type AdminProductListOutput struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

func (u *AdminProductUsecase) List(ctx context.Context, page int, limit int) (AdminProductListOutput, error) {
	if page < 1 {
		return AdminProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return AdminProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	products, total, err := u.products.ListAdmin(ctx, page, limit)
	if err != nil {
		return AdminProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AdminProductListOutput{Products: products, Total: total}, nil
}

type AdminUpdateProductInput struct {
	Price    *decimal.Decimal
	Stock    *int64
	IsActive *bool
}

// 価格・在庫・公開フラグの部分更新
func (u *AdminProductUsecase) Update(ctx context.Context, productID int64, in AdminUpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Price == nil && in.Stock == nil && in.IsActive == nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}
