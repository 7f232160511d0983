package services

import (
	"context"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleInput() ScheduleInput {
	return ScheduleInput{
		MedName:   "Metformin",
		Dosage:    "500mg",
		Times:     models.TimeSlots{"09:00", "21:00"},
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local),
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	svc := NewMedicationService(newFakeScheduleRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ScheduleInput)
	}{
		{"missing name", func(in *ScheduleInput) { in.MedName = " " }},
		{"no dose times", func(in *ScheduleInput) { in.Times = nil }},
		{"malformed slot", func(in *ScheduleInput) { in.Times = models.TimeSlots{"9am"} }},
		{"out of range slot", func(in *ScheduleInput) { in.Times = models.TimeSlots{"25:00"} }},
		{"end before start", func(in *ScheduleInput) {
			in.StartDate = time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)
			in.EndDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := scheduleInput()
			tc.mutate(&in)
			_, err := svc.CreateSchedule(ctx, 1, in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestCreateScheduleNormalizesDates(t *testing.T) {
	svc := NewMedicationService(newFakeScheduleRepo())

	in := scheduleInput()
	in.StartDate = time.Date(2025, 6, 1, 14, 45, 3, 0, time.Local)

	s, err := svc.CreateSchedule(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), s.StartDate)
}

func TestRecordAdherence(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewMedicationService(repo)
	ctx := context.Background()

	s, err := svc.CreateSchedule(ctx, 1, scheduleInput())
	require.NoError(t, err)

	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	require.NoError(t, svc.RecordAdherence(ctx, s.ID, 1, day, models.AdherenceSkipped))

	// same day again: replaced, not appended
	require.NoError(t, svc.RecordAdherence(ctx, s.ID, 1, day, models.AdherenceTaken))
	assert.Equal(t, models.AdherenceTaken, repo.adherence[dayKey(s.ID, day)])
	assert.Len(t, repo.adherence, 1)

	taken, err := repo.TakenOn(ctx, s.ID, day)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestRecordAdherenceValidation(t *testing.T) {
	svc := NewMedicationService(newFakeScheduleRepo())
	ctx := context.Background()

	s, err := svc.CreateSchedule(ctx, 1, scheduleInput())
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, svc.RecordAdherence(ctx, s.ID, 1, time.Now(), "forgot"), &ve)

	var nf *NotFoundError
	require.ErrorAs(t, svc.RecordAdherence(ctx, s.ID, 2, time.Now(), models.AdherenceTaken), &nf)
	require.ErrorAs(t, svc.RecordAdherence(ctx, 999, 1, time.Now(), models.AdherenceTaken), &nf)
}

func TestScheduleOwnership(t *testing.T) {
	svc := NewMedicationService(newFakeScheduleRepo())
	ctx := context.Background()

	s, err := svc.CreateSchedule(ctx, 1, scheduleInput())
	require.NoError(t, err)

	var nf *NotFoundError
	_, err = svc.GetSchedule(ctx, s.ID, 2)
	require.ErrorAs(t, err, &nf)
	require.ErrorAs(t, svc.DeleteSchedule(ctx, s.ID, 2), &nf)

	require.NoError(t, svc.DeleteSchedule(ctx, s.ID, 1))
}
