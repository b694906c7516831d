package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Appointment Kind
// ===============================

type Kind string

const (
	KindAppointment Kind = models.AppointmentKindAppointment
	KindReservation Kind = models.AppointmentKindReservation
)

// ===============================
// Access
// ===============================

// CanAccess reports whether the caller may read or change ap. Callers that
// cannot are told the appointment does not exist.
func CanAccess(c identity.Caller, ap *models.Appointment) bool {
	switch {
	case c.IsAdmin():
		return true
	case c.IsDoctor(ap.DoctorID):
		return true
	case c.IsPatient(ap.PatientID):
		return true
	}
	return false
}

// SlotChanged reports whether moving ap to doctor/date/time touches a different slot.
func SlotChanged(ap *models.Appointment, doctorID uint, date, at string) bool {
	return ap.DoctorID != doctorID || ap.Date != date || ap.Time != at
}
