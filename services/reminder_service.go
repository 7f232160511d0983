package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"backend/models"
)

const (
	doseReminderSeverity = 50
	missedDoseSeverity   = 80
	missedSlotPrefix     = "missed:"
)

// ReminderService runs the medication producers: the per-minute dose
// reminder and the missed-dose escalator. Both passes isolate per-schedule
// failures and never abort the loop, and both dedupe through the
// ReminderLog fire marker rather than the adherence record, so a skipped
// dose is reminded once per slot per day, not every minute.
type ReminderService struct {
	schedules ScheduleRepository
	alerts    AlertIntake
	now       func() time.Time
}

func NewReminderService(schedules ScheduleRepository, alerts AlertIntake) *ReminderService {
	return &ReminderService{schedules: schedules, alerts: alerts, now: time.Now}
}

// RunDueReminders is one pass of the per-minute producer: for every active
// schedule with a dose slot equal to the current minute and no taken entry
// today, raise one medication alert. The marker insert is the idempotency
// gate; a concurrent pass for the same minute loses the insert and skips.
func (r *ReminderService) RunDueReminders(ctx context.Context) error {
	now := r.now()
	day := startOfDay(now)
	slot := minuteSlot(now)

	schedules, err := r.schedules.ActiveAt(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	for i := range schedules {
		s := &schedules[i]
		if !containsSlot(s.Times, slot) {
			continue
		}
		if err := r.fireDoseReminder(ctx, s, day, slot); err != nil {
			log.Printf("ERROR (Reminders): schedule %d: %v", s.ID, err)
		}
	}
	return nil
}

func (r *ReminderService) fireDoseReminder(ctx context.Context, s *models.MedicationSchedule, day time.Time, slot string) error {
	taken, err := r.schedules.TakenOn(ctx, s.ID, day)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}

	created, err := r.schedules.MarkReminded(ctx, s.ID, day, slot)
	if err != nil {
		return err
	}
	if !created { // another pass already fired this slot today
		return nil
	}

	_, err = r.alerts.Handle(ctx, AlertRequest{
		UserID:   s.UserID,
		Type:     models.AlertTypeMedication,
		Severity: doseReminderSeverity,
		Title:    "Medication Reminder",
		Message:  fmt.Sprintf("Time to take %s (%s) — scheduled for %s.", s.MedName, s.Dosage, slot),
		Channels: models.ChannelList{models.ChannelEmail, models.ChannelSMS, models.ChannelApp},
	})
	return err
}

// RunMissedDoseScan is one pass of the escalator: any slot strictly in the
// past today with no taken entry raises a high-priority alert naming the
// missed dose, once per slot per day via the "missed:" marker.
func (r *ReminderService) RunMissedDoseScan(ctx context.Context) error {
	now := r.now()
	day := startOfDay(now)
	current := minuteSlot(now)

	schedules, err := r.schedules.ActiveAt(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	for i := range schedules {
		s := &schedules[i]
		taken, err := r.schedules.TakenOn(ctx, s.ID, day)
		if err != nil {
			log.Printf("ERROR (MissedDose): schedule %d: %v", s.ID, err)
			continue
		}
		if taken {
			continue
		}

		for _, slot := range s.Times {
			if slot >= current { // zero-padded HH:MM compares lexically
				continue
			}
			if err := r.fireMissedDose(ctx, s, day, slot); err != nil {
				log.Printf("ERROR (MissedDose): schedule %d slot %s: %v", s.ID, slot, err)
			}
		}
	}
	return nil
}

func (r *ReminderService) fireMissedDose(ctx context.Context, s *models.MedicationSchedule, day time.Time, slot string) error {
	created, err := r.schedules.MarkReminded(ctx, s.ID, day, missedSlotPrefix+slot)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	_, err = r.alerts.Handle(ctx, AlertRequest{
		UserID:   s.UserID,
		Type:     models.AlertTypeMedication,
		Severity: missedDoseSeverity,
		Title:    "Missed Dose",
		Message:  fmt.Sprintf("You missed your %s dose of %s (%s). Please take it as soon as possible or consult your doctor.", slot, s.MedName, s.Dosage),
		Channels: models.ChannelList{models.ChannelEmail, models.ChannelSMS, models.ChannelApp},
	})
	return err
}

func containsSlot(times models.TimeSlots, slot string) bool {
	for _, t := range times {
		if t == slot {
			return true
		}
	}
	return false
}
