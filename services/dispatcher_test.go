package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	u := models.User{
		Email:    "pat@example.com",
		Phone:    "9876543210",
		IsActive: true,
	}
	u.ID = 1
	return &u
}

func testAlert(channels ...models.Channel) *models.Alert {
	return &models.Alert{
		ID:       42,
		UserID:   1,
		Type:     models.AlertTypeMedication,
		Severity: 50,
		Title:    "Medication Reminder",
		Message:  "Time to take Metformin (500mg) — scheduled for 09:00.",
		Status:   models.AlertStatusPending,
		Channels: channels,
	}
}

func TestDispatchAllChannelsSucceed(t *testing.T) {
	email := &fakeEmailGateway{}
	sms := &fakeSmsGateway{}
	app := &fakeAppChannel{}
	fin := &fakeFinalizer{}
	d := NewNotificationDispatcher(email, sms, app, fin)

	results := d.Dispatch(context.Background(), testAlert(models.ChannelEmail, models.ChannelSMS, models.ChannelApp), testUser())

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, ChannelOK, r.Status)
	}
	assert.True(t, fin.called)
	assert.Equal(t, uint(42), fin.alertID)
	assert.True(t, fin.delivered)
	assert.Equal(t, "pat@example.com", email.to)
	assert.Equal(t, "Medication Reminder", email.subject)
	assert.Equal(t, "+919876543210", sms.to) // normalized before sending
	assert.Equal(t, 1, app.records)
}

func TestDispatchIsolatesFailedChannel(t *testing.T) {
	email := &fakeEmailGateway{}
	sms := &fakeSmsGateway{err: errors.New("sns throttled")}
	app := &fakeAppChannel{}
	fin := &fakeFinalizer{}
	d := NewNotificationDispatcher(email, sms, app, fin)

	results := d.Dispatch(context.Background(), testAlert(models.ChannelEmail, models.ChannelSMS, models.ChannelApp), testUser())

	require.Len(t, results, 3)
	assert.Equal(t, ChannelOK, results[0].Status)
	assert.Equal(t, ChannelFailed, results[1].Status)
	assert.Equal(t, ChannelOK, results[2].Status)

	var gw *GatewayError
	require.ErrorAs(t, results[1].Err, &gw)
	assert.Equal(t, models.ChannelSMS, gw.Channel)

	// one failed channel does not stop the others, and the alert still
	// finalizes as delivered
	assert.True(t, fin.delivered)
	assert.Equal(t, 1, email.sends)
	assert.Equal(t, 1, app.records)
}

func TestDispatchSkipsUnresolvableChannel(t *testing.T) {
	email := &fakeEmailGateway{}
	sms := &fakeSmsGateway{}
	app := &fakeAppChannel{}
	fin := &fakeFinalizer{}
	d := NewNotificationDispatcher(email, sms, app, fin)

	user := testUser()
	user.Phone = "" // sms requested but no target

	results := d.Dispatch(context.Background(), testAlert(models.ChannelEmail, models.ChannelSMS), user)

	require.Len(t, results, 2)
	assert.Equal(t, ChannelOK, results[0].Status)
	assert.Equal(t, ChannelSkipped, results[1].Status)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 0, sms.sends)
	assert.True(t, fin.delivered)
}

func TestDispatchAllFailedStillFinalizes(t *testing.T) {
	email := &fakeEmailGateway{err: errors.New("ses down")}
	sms := &fakeSmsGateway{err: errors.New("sns down")}
	app := &fakeAppChannel{}
	fin := &fakeFinalizer{}
	d := NewNotificationDispatcher(email, sms, app, fin)

	results := d.Dispatch(context.Background(), testAlert(models.ChannelEmail, models.ChannelSMS), testUser())

	require.Len(t, results, 2)
	assert.Equal(t, ChannelFailed, results[0].Status)
	assert.Equal(t, ChannelFailed, results[1].Status)

	// no failed state, no retry: the store still gets its finalize call
	assert.True(t, fin.called)
	assert.False(t, fin.delivered)
}

type slowGateway struct{}

func (slowGateway) Send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return nil
	}
}

func TestDispatchTimesOutSlowGateway(t *testing.T) {
	sms := &fakeSmsGateway{}
	app := &fakeAppChannel{}
	fin := &fakeFinalizer{}
	d := NewNotificationDispatcher(slowGateway{}, sms, app, fin)
	d.timeout = 20 * time.Millisecond

	results := d.Dispatch(context.Background(), testAlert(models.ChannelEmail, models.ChannelSMS), testUser())

	require.Len(t, results, 2)
	assert.Equal(t, ChannelFailed, results[0].Status)
	assert.Equal(t, ChannelOK, results[1].Status) // not blocked by the slow channel
	assert.True(t, fin.delivered)
}
