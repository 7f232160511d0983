package services

import (
	"context"
	"fmt"
	"log"

	"backend/models"
)

const routineCheckSeverity = 30

// RoutineCheckService fires the daily heartbeat: every active user gets a
// routine check-in alert each day, unconditionally. There is deliberately
// no dedup predicate here (the scheduler's overlap guard is the only
// protection against a delayed tick firing twice).
type RoutineCheckService struct {
	users  UserRepository
	alerts AlertIntake
}

func NewRoutineCheckService(users UserRepository, alerts AlertIntake) *RoutineCheckService {
	return &RoutineCheckService{users: users, alerts: alerts}
}

func (s *RoutineCheckService) RunDailyPass(ctx context.Context) error {
	users, err := s.users.Active(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active users: %w", err)
	}

	for i := range users {
		u := &users[i]
		_, err := s.alerts.Handle(ctx, AlertRequest{
			UserID:   u.ID,
			Type:     models.AlertTypeRoutineCheck,
			Severity: routineCheckSeverity,
			Title:    "Daily Health Check-In",
			Message:  "How are you feeling today? Take a minute to review your health summary and log anything unusual.",
			Channels: models.ChannelList{models.ChannelEmail, models.ChannelSMS, models.ChannelApp},
		})
		if err != nil {
			log.Printf("ERROR (RoutineCheck): user %d: %v", u.ID, err)
		}
	}
	return nil
}
