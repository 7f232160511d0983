package datastore

import (
	"context"
	"errors"
	"time"

	"backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonitoringRepository struct {
	db *gorm.DB
}

func NewMonitoringRepository(db *gorm.DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

// Upsert replaces the day's entry if one exists; (user_id, date) is unique.
func (r *MonitoringRepository) Upsert(ctx context.Context, e *models.DailyMonitoringEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"metrics", "updated_at"}),
	}).Create(e).Error
}

func (r *MonitoringRepository) ForDay(ctx context.Context, userID uint, dayStart time.Time) (*models.DailyMonitoringEntry, error) {
	var e models.DailyMonitoringEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayStart.Add(24*time.Hour)).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *MonitoringRepository) ExistsForDay(ctx context.Context, userID uint, dayStart time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DailyMonitoringEntry{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayStart.Add(24*time.Hour)).
		Count(&count).Error
	return count > 0, err
}
