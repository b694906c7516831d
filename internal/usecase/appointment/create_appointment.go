package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// DoctorID is taken from the caller when a doctor books.
	DoctorID uint
	// PatientID is taken from the caller when a patient books.
	PatientID uint

	Date     string
	Time     string
	Location string
	Reason   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(ctx context.Context, c identity.Caller, in CreateAppointmentInput) (ap *models.Appointment, err error) {
	doctorID, patientID := uc.parties(c, in)

	ctx, op := uc.Obs.Start(ctx, "create_appointment",
		attribute.Int64("doctor.id", int64(doctorID)),
		attribute.String("date", in.Date),
		attribute.String("time", in.Time),
	)
	defer func() {
		op.End(err, zap.Uint("doctor_id", doctorID), zap.String("date", in.Date), zap.String("time", in.Time))
	}()

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	f := domain.BookingFields(in.Date, in.Time, in.Location, in.Reason, uc.Clock.Today())
	if doctorID == 0 {
		f.Add("doctor_id", "is required")
	} else if ok, err := uc.doctorExists(ctx, doctorID); err != nil {
		return nil, err
	} else if !ok {
		f.Add("doctor_id", "does not exist")
	}
	if patientID == 0 {
		f.Add("patient_id", "is required")
	} else if ok, err := uc.patientExists(ctx, patientID); err != nil {
		return nil, err
	} else if !ok {
		f.Add("patient_id", "does not exist")
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Slot + appointment, one unit of work
	// --------------------------------------------------
	ap = &models.Appointment{
		PatientID: &patientID,
		DoctorID:  doctorID,
		Date:      in.Date,
		Time:      in.Time,
		Location:  in.Location,
		Reason:    in.Reason,
		Kind:      string(domain.KindAppointment),
	}
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.book(ctx, doctorID, in.Date, in.Time); err != nil {
			return err
		}
		return uc.Appointments.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}
	uc.Obs.SlotBooked()

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	uc.Audit.Dispatch(audit.Event{
		DoctorID: &doctorID,
		UserID:   &c.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.Notifier.Notify(notify.Event{
		Type:          notify.AppointmentCreated,
		DoctorID:      doctorID,
		PatientID:     ap.PatientID,
		AppointmentID: &ap.ID,
		Date:          ap.Date,
		Time:          ap.Time,
	})

	return ap, nil
}

// parties fills in whichever side of the booking the caller is.
func (uc *CreateAppointment) parties(c identity.Caller, in CreateAppointmentInput) (doctorID, patientID uint) {
	doctorID, patientID = in.DoctorID, in.PatientID
	switch c.Role {
	case identity.RolePatient:
		patientID = 0
		if c.PatientID != nil {
			patientID = *c.PatientID
		}
	case identity.RoleDoctor:
		doctorID = 0
		if c.DoctorID != nil {
			doctorID = *c.DoctorID
		}
	case identity.RoleAdmin:
	default:
		return 0, 0
	}
	return doctorID, patientID
}
