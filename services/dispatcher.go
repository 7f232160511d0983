package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"backend/models"
	"backend/utils"
)

const defaultGatewayTimeout = 10 * time.Second

// Outbound gateway contracts. Concrete SES/SNS/hub implementations are
// injected at startup.
type EmailGateway interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SmsGateway interface {
	Send(ctx context.Context, toE164, body string) error
}

type AppChannel interface {
	Record(ctx context.Context, userID uint, alert *models.Alert) error
}

// AlertFinalizer is the one store operation the dispatcher is allowed:
// report that all channel attempts have settled.
type AlertFinalizer interface {
	Finalize(ctx context.Context, alertID uint, delivered bool) (*models.Alert, error)
}

type ChannelStatus string

const (
	ChannelOK      ChannelStatus = "ok"
	ChannelFailed  ChannelStatus = "error"
	ChannelSkipped ChannelStatus = "skipped" // no resolvable target, not a failure
)

type ChannelResult struct {
	Channel models.Channel
	Status  ChannelStatus
	Err     error
}

// NotificationDispatcher fans an alert out to its requested channels.
// Attempts run concurrently and are always joined settle-all: every
// channel reports ok, error or skipped, and no failure short-circuits
// the others.
type NotificationDispatcher struct {
	email     EmailGateway
	sms       SmsGateway
	app       AppChannel
	finalizer AlertFinalizer
	timeout   time.Duration
}

func NewNotificationDispatcher(email EmailGateway, sms SmsGateway, app AppChannel, finalizer AlertFinalizer) *NotificationDispatcher {
	return &NotificationDispatcher{
		email:     email,
		sms:       sms,
		app:       app,
		finalizer: finalizer,
		timeout:   defaultGatewayTimeout,
	}
}

// Dispatch attempts delivery on every requested channel, waits for all to
// settle, then finalizes the alert with whether anything got through.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, alert *models.Alert, user *models.User) []ChannelResult {
	results := make([]ChannelResult, len(alert.Channels))

	var wg sync.WaitGroup
	for i, ch := range alert.Channels {
		if !d.resolvable(ch, user) {
			results[i] = ChannelResult{Channel: ch, Status: ChannelSkipped}
			log.Printf("INFO (Dispatcher): alert %d: %s skipped, no target for user %d", alert.ID, ch, user.ID)
			continue
		}

		wg.Add(1)
		go func(i int, ch models.Channel) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			if err := d.deliver(cctx, ch, alert, user); err != nil {
				results[i] = ChannelResult{Channel: ch, Status: ChannelFailed, Err: &GatewayError{Channel: ch, Err: err}}
				log.Printf("ERROR (Dispatcher): alert %d: %s delivery failed: %v", alert.ID, ch, err)
				return
			}
			results[i] = ChannelResult{Channel: ch, Status: ChannelOK}
		}(i, ch)
	}
	wg.Wait()

	delivered := false
	for _, r := range results {
		if r.Status == ChannelOK {
			delivered = true
			break
		}
	}

	if _, err := d.finalizer.Finalize(ctx, alert.ID, delivered); err != nil {
		log.Printf("ERROR (Dispatcher): alert %d: finalize failed: %v", alert.ID, err)
	}
	return results
}

func (d *NotificationDispatcher) resolvable(ch models.Channel, user *models.User) bool {
	switch ch {
	case models.ChannelEmail:
		return user.Email != ""
	case models.ChannelSMS:
		return user.Phone != ""
	case models.ChannelApp:
		return true
	}
	return false
}

func (d *NotificationDispatcher) deliver(ctx context.Context, ch models.Channel, alert *models.Alert, user *models.User) error {
	switch ch {
	case models.ChannelEmail:
		return d.email.Send(ctx, user.Email, subjectFor(alert), alert.Message)
	case models.ChannelSMS:
		return d.sms.Send(ctx, utils.NormalizePhone(user.Phone), alert.Message)
	case models.ChannelApp:
		return d.app.Record(ctx, user.ID, alert)
	}
	return fmt.Errorf("unknown channel %q", ch)
}

func subjectFor(alert *models.Alert) string {
	if alert.Title != "" {
		return alert.Title
	}
	switch alert.Type {
	case models.AlertTypeSymptom:
		return "Health Alert"
	case models.AlertTypeMedication:
		return "Medication Reminder"
	case models.AlertTypeRoutineCheck:
		return "Daily Health Check"
	}
	return "Notification"
}
