package datastore

import (
	"context"

	"backend/models"

	"gorm.io/gorm"
)

type SymptomReportRepository struct {
	db *gorm.DB
}

func NewSymptomReportRepository(db *gorm.DB) *SymptomReportRepository {
	return &SymptomReportRepository{db: db}
}

func (r *SymptomReportRepository) Create(ctx context.Context, report *models.SymptomReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *SymptomReportRepository) MarkEscalated(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.SymptomReport{}).
		Where("id = ?", id).
		Update("escalated", true).Error
}

func (r *SymptomReportRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.SymptomReport, error) {
	var reports []models.SymptomReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}
