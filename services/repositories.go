package services

import (
	"context"
	"time"

	"backend/models"
)

// Persistence interfaces the services depend on. The gorm implementations
// live in the datastore package; tests substitute in-memory fakes.
// Finders return (nil, nil) when no row matches — callers decide whether
// that is a NotFoundError.

type AlertRepository interface {
	Create(ctx context.Context, a *models.Alert) error
	FindByID(ctx context.Context, id uint) (*models.Alert, error)
	FindOwned(ctx context.Context, id, userID uint) (*models.Alert, error)
	Save(ctx context.Context, a *models.Alert) error
	ListByUser(ctx context.Context, userID uint, status *models.AlertStatus, limit int) ([]models.Alert, error)
	Delete(ctx context.Context, id, userID uint) (bool, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *models.MedicationSchedule) error
	FindOwned(ctx context.Context, id, userID uint) (*models.MedicationSchedule, error)
	Save(ctx context.Context, s *models.MedicationSchedule) error
	Delete(ctx context.Context, id, userID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.MedicationSchedule, error)

	// ActiveAt returns schedules whose start/end window covers t's day.
	ActiveAt(ctx context.Context, t time.Time) ([]models.MedicationSchedule, error)
	// TakenOn reports whether the day has an adherence entry with status taken.
	TakenOn(ctx context.Context, scheduleID uint, day time.Time) (bool, error)
	// UpsertAdherence writes the day's entry atomically; last writer for the
	// date wins, no duplicate day rows under concurrent writers.
	UpsertAdherence(ctx context.Context, scheduleID uint, day time.Time, status models.AdherenceStatus) error
	// MarkReminded inserts the fire marker for (schedule, day, slot) and
	// reports whether this call created it. A false return means another
	// pass already fired for the slot.
	MarkReminded(ctx context.Context, scheduleID uint, day time.Time, slot string) (bool, error)
}

type UserRepository interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
	Active(ctx context.Context) ([]models.User, error)
}

type MonitoringRepository interface {
	Upsert(ctx context.Context, e *models.DailyMonitoringEntry) error
	ForDay(ctx context.Context, userID uint, dayStart time.Time) (*models.DailyMonitoringEntry, error)
	ExistsForDay(ctx context.Context, userID uint, dayStart time.Time) (bool, error)
}

type SymptomReportRepository interface {
	Create(ctx context.Context, r *models.SymptomReport) error
	MarkEscalated(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.SymptomReport, error)
}
