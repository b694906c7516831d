package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func uptr(v uint) *uint { return &v }

func TestCanAccess(t *testing.T) {
	ap := &models.Appointment{DoctorID: 2, PatientID: uptr(9)}

	assert.True(t, CanAccess(identity.Caller{Role: identity.RoleAdmin}, ap))
	assert.True(t, CanAccess(identity.Caller{Role: identity.RoleDoctor, DoctorID: uptr(2)}, ap))
	assert.True(t, CanAccess(identity.Caller{Role: identity.RolePatient, PatientID: uptr(9)}, ap))

	assert.False(t, CanAccess(identity.Caller{Role: identity.RoleDoctor, DoctorID: uptr(3)}, ap))
	assert.False(t, CanAccess(identity.Caller{Role: identity.RolePatient, PatientID: uptr(8)}, ap))
	assert.False(t, CanAccess(identity.Caller{Role: identity.RolePatient, PatientID: uptr(9)}, &models.Appointment{DoctorID: 2}))
}

func TestSlotChanged(t *testing.T) {
	ap := &models.Appointment{DoctorID: 2, Date: "2025-10-06", Time: "08:00"}
	assert.False(t, SlotChanged(ap, 2, "2025-10-06", "08:00"))
	assert.True(t, SlotChanged(ap, 3, "2025-10-06", "08:00"))
	assert.True(t, SlotChanged(ap, 2, "2025-10-07", "08:00"))
	assert.True(t, SlotChanged(ap, 2, "2025-10-06", "08:30"))
}

func TestBookingFields(t *testing.T) {
	f := BookingFields("2025-10-06", "08:00", "Room 101", "", "2025-10-06")
	assert.NoError(t, f.Err())

	f = BookingFields("2025-10-05", "8am", "", "", "2025-10-06")
	ve, ok := httperr.AsValidation(f.Err())
	require.True(t, ok)
	assert.Equal(t, "must be today or later", ve.Fields["date"])
	assert.Contains(t, ve.Fields, "time")
	assert.Equal(t, "is required", ve.Fields["location"])
}

func TestOpenSlots(t *testing.T) {
	pinnedDate := "2025-10-06"
	slots := []models.DoctorSlot{
		{DoctorID: 2, Weekday: 1, StartTime: "08:30", EndTime: "09:00", Status: "available"},
		{DoctorID: 2, Weekday: 1, StartTime: "08:00", EndTime: "08:30", Status: "available"},
		{DoctorID: 2, Weekday: 1, StartTime: "09:00", EndTime: "09:30", Status: "booked"},
		{DoctorID: 2, Weekday: 1, SlotDate: &pinnedDate, StartTime: "08:30", EndTime: "09:00", Status: "booked"},
		{DoctorID: 2, Weekday: 3, StartTime: "10:00", EndTime: "10:30", Status: "available"},
	}
	taken := map[string]bool{TakenKey("2025-10-13", "08:00"): true}

	from := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	got := OpenSlots(from, to, slots, taken)
	assert.Equal(t, []TimeSlot{
		{Date: "2025-10-06", Start: "08:00", End: "08:30"},
		{Date: "2025-10-08", Start: "10:00", End: "10:30"},
		{Date: "2025-10-13", Start: "08:30", End: "09:00"},
	}, got)
}
