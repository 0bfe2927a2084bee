package repository

import (
	"context"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
)

// 追記専用。送信前に pending 行を作り、結果で終端ステータスに更新する。
type EmailLogRepository interface {
	Create(ctx context.Context, log model.EmailLog) (int64, error)
	MarkSent(ctx context.Context, logID int64, sentAt time.Time) error
	MarkFailed(ctx context.Context, logID int64, errDetail string, at time.Time) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.EmailLog, error)
}
