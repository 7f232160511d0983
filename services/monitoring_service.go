package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"backend/models"

	"gorm.io/datatypes"
)

const monitoringReminderSeverity = 40

type ReminderWindow string

const (
	WindowMorning ReminderWindow = "morning"
	WindowEvening ReminderWindow = "evening"
)

// windowTemplate carries the window-specific subject/body pair; the two
// windows must not share copy.
type windowTemplate struct {
	title   string
	message string
}

var windowTemplates = map[ReminderWindow]windowTemplate{
	WindowMorning: {
		title:   "Morning Health Check Reminder",
		message: "Good morning! You haven't logged today's vitals yet. Take a minute to record your readings so we can keep an eye on your trends.",
	},
	WindowEvening: {
		title:   "Evening Health Check Reminder",
		message: "The day is almost over and today's vitals are still missing. Please log your readings before bed.",
	},
}

// MonitoringService owns daily monitoring entries and the two-window
// reminder producer gated on "has the user already submitted today".
type MonitoringService struct {
	entries MonitoringRepository
	users   UserRepository
	alerts  AlertIntake
	now     func() time.Time
}

func NewMonitoringService(entries MonitoringRepository, users UserRepository, alerts AlertIntake) *MonitoringService {
	return &MonitoringService{entries: entries, users: users, alerts: alerts, now: time.Now}
}

// SubmitEntry records today's vitals, replacing an earlier submission for
// the same day.
func (s *MonitoringService) SubmitEntry(ctx context.Context, userID uint, metrics datatypes.JSON) (*models.DailyMonitoringEntry, error) {
	if len(metrics) == 0 {
		return nil, validationErrorf("metrics payload is required")
	}
	e := &models.DailyMonitoringEntry{
		UserID:  userID,
		Date:    startOfDay(s.now()),
		Metrics: metrics,
	}
	if err := s.entries.Upsert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// TodayEntry returns today's submission, or a NotFoundError if the user
// has not logged yet.
func (s *MonitoringService) TodayEntry(ctx context.Context, userID uint) (*models.DailyMonitoringEntry, error) {
	e, err := s.entries.ForDay(ctx, userID, startOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &NotFoundError{Resource: "monitoring entry"}
	}
	return e, nil
}

// RunReminderPass is one pass of the window producer: every active user
// with no entry for today gets the window's templated reminder over email
// and SMS. In-app is deliberately not used here; the reminder is only
// useful if it reaches the user outside the app.
func (s *MonitoringService) RunReminderPass(ctx context.Context, window ReminderWindow) error {
	tpl, ok := windowTemplates[window]
	if !ok {
		return fmt.Errorf("unknown reminder window %q", window)
	}

	day := startOfDay(s.now())
	users, err := s.users.Active(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active users: %w", err)
	}

	for i := range users {
		u := &users[i]
		exists, err := s.entries.ExistsForDay(ctx, u.ID, day)
		if err != nil {
			log.Printf("ERROR (MonitoringReminder): user %d: %v", u.ID, err)
			continue
		}
		if exists {
			continue
		}

		_, err = s.alerts.Handle(ctx, AlertRequest{
			UserID:   u.ID,
			Type:     models.AlertTypeRoutineCheck,
			Severity: monitoringReminderSeverity,
			Title:    tpl.title,
			Message:  tpl.message,
			Channels: models.ChannelList{models.ChannelEmail, models.ChannelSMS},
		})
		if err != nil {
			log.Printf("ERROR (MonitoringReminder): user %d: %v", u.ID, err)
		}
	}
	return nil
}
