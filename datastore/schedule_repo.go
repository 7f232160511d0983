package datastore

import (
	"context"
	"errors"
	"time"

	"backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *models.MedicationSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) FindOwned(ctx context.Context, id, userID uint) (*models.MedicationSchedule, error) {
	var s models.MedicationSchedule
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) Save(ctx context.Context, s *models.MedicationSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.MedicationSchedule{})
	return res.RowsAffected > 0, res.Error
}

func (r *ScheduleRepository) ListByUser(ctx context.Context, userID uint) ([]models.MedicationSchedule, error) {
	var schedules []models.MedicationSchedule
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&schedules).Error
	return schedules, err
}

// ActiveAt returns schedules whose start/end window covers t's day.
// Start and end dates are stored at local midnight, so the comparison is
// day-granular and end dates are inclusive.
func (r *ScheduleRepository) ActiveAt(ctx context.Context, t time.Time) ([]models.MedicationSchedule, error) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	var schedules []models.MedicationSchedule
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) TakenOn(ctx context.Context, scheduleID uint, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdherenceEntry{}).
		Where("schedule_id = ? AND date = ? AND status = ?", scheduleID, day, models.AdherenceTaken).
		Count(&count).Error
	return count > 0, err
}

// UpsertAdherence writes the day's entry in one statement; the unique
// index on (schedule_id, date) turns concurrent writers into
// last-writer-wins instead of duplicate rows.
func (r *ScheduleRepository) UpsertAdherence(ctx context.Context, scheduleID uint, day time.Time, status models.AdherenceStatus) error {
	entry := models.AdherenceEntry{
		ScheduleID: scheduleID,
		Date:       day,
		Status:     status,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "schedule_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&entry).Error
}

// MarkReminded inserts the fire marker with ON CONFLICT DO NOTHING: of two
// concurrent passes for the same slot exactly one sees created=true and
// gets to raise the alert.
func (r *ScheduleRepository) MarkReminded(ctx context.Context, scheduleID uint, day time.Time, slot string) (bool, error) {
	marker := models.ReminderLog{
		ScheduleID: scheduleID,
		Date:       day,
		Slot:       slot,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&marker)
	return res.RowsAffected > 0, res.Error
}
