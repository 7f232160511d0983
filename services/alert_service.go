package services

import (
	"context"
	"log"
	"strings"

	"backend/models"
)

const (
	defaultAlertPageSize = 50
	maxAlertPageSize     = 100
)

// AlertRequest is how producers and the escalation trigger ask for an
// alert: a plain value handed to the alert service, so scheduling cadence
// stays decoupled from creation/dispatch.
type AlertRequest struct {
	UserID   uint
	Type     models.AlertType
	Severity int
	Title    string
	Message  string
	Channels models.ChannelList
}

// AlertIntake is the producer-facing side of the alert service.
type AlertIntake interface {
	Handle(ctx context.Context, req AlertRequest) (*models.Alert, error)
}

// Dispatcher is what the alert service needs from the notification side.
type Dispatcher interface {
	Dispatch(ctx context.Context, alert *models.Alert, user *models.User) []ChannelResult
}

// AlertService owns the Alert lifecycle. Producers request creation
// through Handle and never touch the record afterwards.
type AlertService struct {
	alerts     AlertRepository
	users      UserRepository
	dispatcher Dispatcher
}

func NewAlertService(alerts AlertRepository, users UserRepository) *AlertService {
	return &AlertService{alerts: alerts, users: users}
}

// SetDispatcher breaks the construction cycle: the dispatcher finalizes
// alerts through this service, so it is built second and attached here.
func (s *AlertService) SetDispatcher(d Dispatcher) { s.dispatcher = d }

// Create validates and persists a new pending alert.
func (s *AlertService) Create(ctx context.Context, userID uint, typ models.AlertType, severity int, title, message string, channels models.ChannelList) (*models.Alert, error) {
	if !typ.Valid() {
		return nil, validationErrorf("invalid alert type %q", typ)
	}
	if strings.TrimSpace(message) == "" {
		return nil, validationErrorf("alert message is required")
	}
	if len(channels) == 0 {
		return nil, validationErrorf("at least one channel is required")
	}
	for _, ch := range channels {
		if !ch.Valid() {
			return nil, validationErrorf("invalid channel %q", ch)
		}
	}
	if severity < 0 || severity > 100 {
		return nil, validationErrorf("severity must be between 0 and 100")
	}

	a := &models.Alert{
		UserID:   userID,
		Type:     typ,
		Severity: severity,
		Title:    title,
		Message:  message,
		Status:   models.AlertStatusPending,
		Channels: channels,
	}
	if err := s.alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Finalize is called by the dispatcher once every channel attempt has
// settled. The alert moves to sent even when every channel failed; the
// store, not the dispatcher, owns that decision, and there is no retry
// queue or failed state.
func (s *AlertService) Finalize(ctx context.Context, alertID uint, delivered bool) (*models.Alert, error) {
	a, err := s.alerts.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &NotFoundError{Resource: "alert"}
	}
	if a.Status == models.AlertStatusPending {
		a.Status = models.AlertStatusSent
		if err := s.alerts.Save(ctx, a); err != nil {
			return nil, err
		}
	}
	if !delivered {
		log.Printf("WARN (AlertService): alert %d marked sent but no channel delivered", alertID)
	}
	return a, nil
}

// UpdateStatus applies an operator transition. The lifecycle only moves
// forward; resolved never regresses.
func (s *AlertService) UpdateStatus(ctx context.Context, alertID, userID uint, status models.AlertStatus) (*models.Alert, error) {
	if status.Rank() < 0 {
		return nil, validationErrorf("invalid status %q", status)
	}
	a, err := s.alerts.FindOwned(ctx, alertID, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &NotFoundError{Resource: "alert"}
	}
	if status.Rank() < a.Status.Rank() {
		return nil, validationErrorf("cannot move alert from %s back to %s", a.Status, status)
	}
	a.Status = status
	if err := s.alerts.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForUser returns the user's alerts newest-first, optionally filtered
// by status, capped at maxAlertPageSize.
func (s *AlertService) ListForUser(ctx context.Context, userID uint, status *models.AlertStatus, limit int) ([]models.Alert, error) {
	if status != nil && status.Rank() < 0 {
		return nil, validationErrorf("invalid status filter %q", *status)
	}
	if limit <= 0 {
		limit = defaultAlertPageSize
	}
	if limit > maxAlertPageSize {
		limit = maxAlertPageSize
	}
	return s.alerts.ListByUser(ctx, userID, status, limit)
}

// Delete removes an alert at the owner's explicit request, the only
// deletion path that exists.
func (s *AlertService) Delete(ctx context.Context, alertID, userID uint) error {
	deleted, err := s.alerts.Delete(ctx, alertID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Resource: "alert"}
	}
	return nil
}

// Handle is the single intake for alert requests: create the pending row,
// then hand it to the dispatcher. The row is durable before any channel
// attempt starts; the dispatcher finalizes when all attempts settle.
func (s *AlertService) Handle(ctx context.Context, req AlertRequest) (*models.Alert, error) {
	a, err := s.Create(ctx, req.UserID, req.Type, req.Severity, req.Title, req.Message, req.Channels)
	if err != nil {
		return nil, err
	}

	user, err := s.users.ByID(ctx, req.UserID)
	if err != nil {
		return a, err
	}
	if user == nil {
		return a, &NotFoundError{Resource: "user"}
	}

	if s.dispatcher == nil { // not wired yet, alert stays pending
		log.Printf("WARN (AlertService): no dispatcher attached, alert %d left pending", a.ID)
		return a, nil
	}
	s.dispatcher.Dispatch(ctx, a, user)
	return a, nil
}
