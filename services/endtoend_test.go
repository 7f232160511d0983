package services

import (
	"context"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full path without timers: a real reminder pass feeding a real alert
// service and dispatcher, with only repos and gateways faked.
func TestReminderPassEndToEnd(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(testSchedule(1, 1, "09:00"))
	alertRepo := newFakeAlertRepo()
	userRepo := newFakeUserRepo(activeUser(1))

	email := &fakeEmailGateway{}
	sms := &fakeSmsGateway{}
	app := &fakeAppChannel{}

	alertSvc := NewAlertService(alertRepo, userRepo)
	alertSvc.SetDispatcher(NewNotificationDispatcher(email, sms, app, alertSvc))

	reminders := NewReminderService(scheduleRepo, alertSvc)
	reminders.now = fixedClock(9, 0)

	require.NoError(t, reminders.RunDueReminders(context.Background()))

	// exactly one alert, created pending, finalized sent after fan-out
	alerts, err := alertSvc.ListForUser(context.Background(), 1, nil, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, models.AlertTypeMedication, a.Type)
	assert.Equal(t, doseReminderSeverity, a.Severity)
	assert.Equal(t, models.AlertStatusSent, a.Status)
	assert.ElementsMatch(t, models.ChannelList{models.ChannelEmail, models.ChannelSMS, models.ChannelApp}, a.Channels)

	// every channel was attempted
	assert.Equal(t, 1, email.sends)
	assert.Equal(t, 1, sms.sends)
	assert.Equal(t, 1, app.records)
	assert.Equal(t, "+919876543210", sms.to)

	// a second pass for the same minute is a no-op
	require.NoError(t, reminders.RunDueReminders(context.Background()))
	alerts, _ = alertSvc.ListForUser(context.Background(), 1, nil, 10)
	assert.Len(t, alerts, 1)
}
