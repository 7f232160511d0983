package services

import (
	"context"
	"strings"
	"time"

	"backend/models"
)

// ScheduleInput is the user-facing shape for creating or updating a
// medication schedule.
type ScheduleInput struct {
	MedName   string           `json:"med_name"`
	Dosage    string           `json:"dosage"`
	Times     models.TimeSlots `json:"times"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Notes     string           `json:"notes"`
}

// MedicationService owns schedule CRUD and adherence updates. It never
// creates alerts; the reminder producers read what it writes.
type MedicationService struct {
	schedules ScheduleRepository
	now       func() time.Time
}

func NewMedicationService(schedules ScheduleRepository) *MedicationService {
	return &MedicationService{schedules: schedules, now: time.Now}
}

func (m *MedicationService) validate(in *ScheduleInput) error {
	if strings.TrimSpace(in.MedName) == "" {
		return validationErrorf("med_name is required")
	}
	if len(in.Times) == 0 {
		return validationErrorf("at least one dose time is required")
	}
	for _, t := range in.Times {
		if !validSlot(t) {
			return validationErrorf("invalid dose time %q, expected HH:MM", t)
		}
	}
	if in.EndDate.Before(in.StartDate) {
		return validationErrorf("end_date must not be before start_date")
	}
	return nil
}

func (m *MedicationService) CreateSchedule(ctx context.Context, userID uint, in ScheduleInput) (*models.MedicationSchedule, error) {
	if err := m.validate(&in); err != nil {
		return nil, err
	}
	s := &models.MedicationSchedule{
		UserID:    userID,
		MedName:   in.MedName,
		Dosage:    in.Dosage,
		Times:     in.Times,
		StartDate: startOfDay(in.StartDate),
		EndDate:   startOfDay(in.EndDate),
		Notes:     in.Notes,
	}
	if err := m.schedules.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MedicationService) ListSchedules(ctx context.Context, userID uint) ([]models.MedicationSchedule, error) {
	return m.schedules.ListByUser(ctx, userID)
}

func (m *MedicationService) GetSchedule(ctx context.Context, id, userID uint) (*models.MedicationSchedule, error) {
	s, err := m.schedules.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &NotFoundError{Resource: "medication schedule"}
	}
	return s, nil
}

func (m *MedicationService) UpdateSchedule(ctx context.Context, id, userID uint, in ScheduleInput) (*models.MedicationSchedule, error) {
	if err := m.validate(&in); err != nil {
		return nil, err
	}
	s, err := m.GetSchedule(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.MedName = in.MedName
	s.Dosage = in.Dosage
	s.Times = in.Times
	s.StartDate = startOfDay(in.StartDate)
	s.EndDate = startOfDay(in.EndDate)
	s.Notes = in.Notes
	if err := m.schedules.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MedicationService) DeleteSchedule(ctx context.Context, id, userID uint) error {
	deleted, err := m.schedules.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Resource: "medication schedule"}
	}
	return nil
}

// RecordAdherence upserts the day's taken/skipped entry. One row per
// (schedule, date); concurrent writers resolve last-writer-wins instead
// of stacking duplicate day records.
func (m *MedicationService) RecordAdherence(ctx context.Context, scheduleID, userID uint, day time.Time, status models.AdherenceStatus) error {
	if !status.Valid() {
		return validationErrorf("invalid adherence status %q", status)
	}
	if _, err := m.GetSchedule(ctx, scheduleID, userID); err != nil {
		return err
	}
	if day.IsZero() {
		day = m.now()
	}
	return m.schedules.UpsertAdherence(ctx, scheduleID, startOfDay(day), status)
}
