package repository

import (
	"context"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"

	"gorm.io/gorm"
)

type EmailLogGormRepository struct {
	db *gorm.DB
}

func NewEmailLogGormRepository(db *gorm.DB) *EmailLogGormRepository {
	return &EmailLogGormRepository{db: db}
}

func (r *EmailLogGormRepository) Create(ctx context.Context, log model.EmailLog) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return 0, err
	}
	return log.ID, nil
}

func (r *EmailLogGormRepository) MarkSent(ctx context.Context, logID int64, sentAt time.Time) error {
	return r.markResult(ctx, logID, map[string]any{
		"status":  model.EmailLogStatusSent,
		"sent_at": sentAt,
	})
}

func (r *EmailLogGormRepository) MarkFailed(ctx context.Context, logID int64, errDetail string, at time.Time) error {
	return r.markResult(ctx, logID, map[string]any{
		"status":  model.EmailLogStatusFailed,
		"error":   errDetail,
		"sent_at": at,
	})
}

func (r *EmailLogGormRepository) markResult(ctx context.Context, logID int64, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.EmailLog{}).
		Where("id = ?", logID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EmailLogGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.EmailLog, error) {
	var logs []model.EmailLog
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return []model.EmailLog{}, err
	}
	return logs, nil
}
