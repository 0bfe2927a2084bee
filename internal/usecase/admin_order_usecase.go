package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"
)

type AdminOrderUsecase struct {
	orders    repo.OrderRepository
	emailLogs repo.EmailLogRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository, emailLogs repo.EmailLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, emailLogs: emailLogs}
}

type AdminOrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.ValidOrderStatus(f.Status) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{Orders: orders, Total: total}, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID int64) (model.Order, []model.EmailLog, error) {
	if orderID <= 0 {
		return model.Order{}, nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//通知の送信履歴も一緒に返す（監査用）
	logs, err := u.emailLogs.ListByOrderID(ctx, orderID)
	if err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return o, logs, nil
}

// ステータス更新。遷移テーブルは持たない（どの状態からでも変更可）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	status = strings.TrimSpace(status)
	if !model.ValidOrderStatus(status) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(status))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
