package models

import "time"

const (
	AppointmentKindAppointment = "appointment"
	AppointmentKindReservation = "reservation"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Nil for administrative reservations.
	PatientID *uint `gorm:"index" json:"patient_id"`
	DoctorID  uint  `gorm:"not null;uniqueIndex:idx_appointments_doctor_slot" json:"doctor_id"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_appointments_doctor_slot" json:"date"`
	Time string `gorm:"size:5;not null;uniqueIndex:idx_appointments_doctor_slot" json:"time"`

	Location string `gorm:"size:255;not null" json:"location"`
	Reason   string `gorm:"size:255" json:"reason"`

	Kind          string `gorm:"size:20;not null;default:'appointment'" json:"kind"`
	HoldRequestID *uint  `gorm:"index" json:"hold_request_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
