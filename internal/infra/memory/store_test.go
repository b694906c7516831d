package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.CreateTemplate(ctx, &models.ScheduleTemplate{Name: "A", Weekdays: []int{1}, StartTime: "08:00", EndTime: "09:00"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.CountTemplates(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithinTxNestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			return s.CreateTemplate(ctx, &models.ScheduleTemplate{Name: "A", Weekdays: []int{1}, StartTime: "08:00", EndTime: "09:00"})
		})
	})
	require.NoError(t, err)

	n, _ := s.CountTemplates(ctx)
	assert.Equal(t, int64(1), n)
}

func TestWithinTxCancelledContextRollsBack(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	err := s.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.CreateTemplate(txCtx, &models.ScheduleTemplate{Name: "A", Weekdays: []int{1}, StartTime: "08:00", EndTime: "09:00"}); err != nil {
			return err
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	n, _ := s.CountTemplates(context.Background())
	assert.Zero(t, n)
}

func TestAppointmentUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := &models.Appointment{DoctorID: 2, Date: "2025-10-06", Time: "08:00", Location: "A"}
	require.NoError(t, s.CreateAppointment(ctx, first))

	dup := &models.Appointment{DoctorID: 2, Date: "2025-10-06", Time: "08:00", Location: "B"}
	assert.True(t, httperr.IsSlotUnavailable(s.CreateAppointment(ctx, dup)))

	other := &models.Appointment{DoctorID: 2, Date: "2025-10-06", Time: "08:30", Location: "B"}
	require.NoError(t, s.CreateAppointment(ctx, other))

	other.Time = "08:00"
	assert.True(t, httperr.IsSlotUnavailable(s.UpdateAppointment(ctx, other)))

	first.Location = "C"
	require.NoError(t, s.UpdateAppointment(ctx, first))

	list, err := s.ListAppointments(ctx, appointment.Filter{From: "2025-10-06", To: "2025-10-06"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].Location)
}

func TestFindForUpdatePrefersPinned(t *testing.T) {
	ctx := context.Background()
	s := New()
	date := "2025-10-06"

	require.NoError(t, s.CreateSlots(ctx, []models.DoctorSlot{
		{TemplateID: 1, DoctorID: 2, Weekday: 1, StartTime: "08:00", EndTime: "08:30", Status: "available"},
		{TemplateID: 2, DoctorID: 2, Weekday: 1, SlotDate: &date, StartTime: "08:00", EndTime: "08:30", Status: "available"},
	}))

	q, _ := slot.NewQuery(2, date, "08:10")
	got, err := s.FindForUpdate(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.TemplateID)

	q, _ = slot.NewQuery(2, "2025-10-13", "08:10")
	got, err = s.FindForUpdate(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.TemplateID)

	q, _ = slot.NewQuery(2, "2025-10-07", "08:10")
	_, err = s.FindForUpdate(ctx, q)
	assert.True(t, httperr.IsNotFound(err))
}

func TestListHoldsPaginates(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 5; i++ {
		status := "pending"
		if i%2 == 1 {
			status = "approved"
		}
		require.NoError(t, s.CreateHold(ctx, &models.HoldRequest{DoctorID: 2, TargetDate: "2025-10-06", Status: status}))
	}

	page, total, err := s.ListHolds(ctx, hold.Filter{Statuses: []hold.Status{hold.StatusPending}, Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Greater(t, page[0].ID, page[1].ID)

	page, _, err = s.ListHolds(ctx, hold.Filter{Statuses: []hold.Status{hold.StatusPending}, Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, page)

	c, err := s.CountHolds(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, hold.Counters{Pending: 3, Approved: 2}, c)
}
