package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type ListAppointmentsInput struct {
	// DoctorID filters admin listings; other callers are scoped to themselves.
	DoctorID *uint
	From     string
	To       string
}

type ListAppointments struct {
	Deps
}

func NewListAppointments(d Deps) *ListAppointments {
	return &ListAppointments{Deps: d}
}

func (uc *ListAppointments) Execute(ctx context.Context, c identity.Caller, in ListAppointmentsInput) ([]models.Appointment, error) {
	f := validators.Fields{}
	if in.From != "" {
		f.Date("from", in.From)
	}
	if in.To != "" {
		f.Date("to", in.To)
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	filter := domain.Filter{From: in.From, To: in.To}
	switch {
	case c.IsAdmin():
		filter.DoctorID = in.DoctorID
	case c.Role == identity.RoleDoctor && c.DoctorID != nil:
		filter.DoctorID = c.DoctorID
	case c.Role == identity.RolePatient && c.PatientID != nil:
		filter.PatientID = c.PatientID
	default:
		return nil, httperr.ErrNotFound("appointment")
	}

	list, err := uc.Appointments.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Appointment{}
	}
	return list, nil
}

type GetAppointment struct {
	Deps
}

func NewGetAppointment(d Deps) *GetAppointment {
	return &GetAppointment{Deps: d}
}

func (uc *GetAppointment) Execute(ctx context.Context, c identity.Caller, id uint) (*models.Appointment, error) {
	return uc.load(ctx, c, id)
}
