package datastore

import (
	"context"
	"errors"

	"backend/models"

	"gorm.io/gorm"
)

// AlertRepository is the gorm-backed alert store. Finders return
// (nil, nil) when no row matches.
type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *models.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AlertRepository) FindByID(ctx context.Context, id uint) (*models.Alert, error) {
	var a models.Alert
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepository) FindOwned(ctx context.Context, id, userID uint) (*models.Alert, error) {
	var a models.Alert
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepository) Save(ctx context.Context, a *models.Alert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID uint, status *models.AlertStatus, limit int) ([]models.Alert, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var alerts []models.Alert
	err := q.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) Delete(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Alert{})
	return res.RowsAffected > 0, res.Error
}
