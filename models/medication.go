package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TimeSlots holds "HH:MM" dose times, stored as a jsonb column.
type TimeSlots []string

func (t TimeSlots) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	return string(b), err
}

func (t *TimeSlots) Scan(v any) error {
	switch data := v.(type) {
	case []byte:
		return json.Unmarshal(data, t)
	case string:
		return json.Unmarshal([]byte(data), t)
	case nil:
		*t = nil
		return nil
	}
	return errors.New("unsupported type for TimeSlots")
}

type MedicationSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	MedName   string    `gorm:"not null" json:"med_name"`
	Dosage    string    `json:"dosage"` // e.g. "500mg"
	Times     TimeSlots `gorm:"type:jsonb" json:"times"`
	StartDate time.Time `gorm:"index" json:"start_date"`
	EndDate   time.Time `gorm:"index" json:"end_date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdherenceStatus string

const (
	AdherenceTaken   AdherenceStatus = "taken"
	AdherenceSkipped AdherenceStatus = "skipped"
)

func (s AdherenceStatus) Valid() bool {
	return s == AdherenceTaken || s == AdherenceSkipped
}

// AdherenceEntry records one decision per schedule per calendar day.
// The unique index makes the per-day write an upsert, never a duplicate row.
type AdherenceEntry struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ScheduleID uint            `gorm:"uniqueIndex:idx_adherence_day" json:"schedule_id"`
	Date       time.Time       `gorm:"uniqueIndex:idx_adherence_day" json:"date"`
	Status     AdherenceStatus `gorm:"size:10" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ReminderLog is the fire marker for the periodic producers: one row per
// (schedule, day, slot) proves a reminder was already raised. Missed-dose
// escalations use the same table under a "missed:" slot prefix.
type ReminderLog struct {
	ID         uint      `gorm:"primaryKey"`
	ScheduleID uint      `gorm:"uniqueIndex:idx_reminder_fire"`
	Date       time.Time `gorm:"uniqueIndex:idx_reminder_fire"`
	Slot       string    `gorm:"size:20;uniqueIndex:idx_reminder_fire"`
	CreatedAt  time.Time
}
