package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Filter narrows List. Zero values are ignored; From/To are inclusive dates.
type Filter struct {
	DoctorID  *uint
	PatientID *uint
	From      string
	To        string
}

type Repository interface {
	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	// GetAppointmentForUpdate locks the row until the transaction ends.
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error
	ListAppointments(ctx context.Context, f Filter) ([]models.Appointment, error)

	// -------- Patient --------
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
}
