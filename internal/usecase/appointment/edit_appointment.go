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

type EditAppointmentInput struct {
	ID uint

	Date     string
	Time     string
	Location string
	Reason   string

	// Admin only; ignored for other callers.
	DoctorID  *uint
	PatientID *uint
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	Deps
}

func NewEditAppointment(d Deps) *EditAppointment {
	return &EditAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute edits an appointment under its row lock. When doctor, date or time
// change, the old slot is released and the new one booked in the same
// transaction; if the new slot is taken nothing changes.
func (uc *EditAppointment) Execute(ctx context.Context, c identity.Caller, in EditAppointmentInput) (out *models.Appointment, err error) {
	ctx, op := uc.Obs.Start(ctx, "edit_appointment",
		attribute.Int64("appointment.id", int64(in.ID)),
		attribute.String("date", in.Date),
		attribute.String("time", in.Time),
	)
	defer func() {
		op.End(err, zap.Uint("appointment_id", in.ID), zap.String("date", in.Date), zap.String("time", in.Time))
	}()

	var (
		ap    *models.Appointment
		next  models.Appointment
		moved bool
	)
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.loadForUpdate(ctx, c, in.ID)
		if err != nil {
			return err
		}
		next, err = uc.plan(ctx, c, ap, in)
		if err != nil {
			return err
		}

		moved = domain.SlotChanged(ap, next.DoctorID, next.Date, next.Time)
		if moved {
			if err := uc.release(ctx, ap.DoctorID, ap.Date, ap.Time); err != nil {
				return err
			}
			if err := uc.book(ctx, next.DoctorID, next.Date, next.Time); err != nil {
				return err
			}
		}
		return uc.Appointments.UpdateAppointment(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	if moved {
		uc.Obs.SlotReleased()
		uc.Obs.SlotBooked()
	}

	uc.Audit.Dispatch(audit.Event{
		DoctorID: &next.DoctorID,
		UserID:   &c.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &next.ID,
		Metadata: map[string]any{
			"moved":     moved,
			"from_date": ap.Date,
			"from_time": ap.Time,
		},
	})
	if moved {
		uc.Notifier.Notify(notify.Event{
			Type:          notify.AppointmentUpdated,
			DoctorID:      next.DoctorID,
			PatientID:     next.PatientID,
			AppointmentID: &next.ID,
			Date:          next.Date,
			Time:          next.Time,
		})
	}

	return uc.Appointments.GetAppointment(ctx, next.ID)
}

// plan applies in to a copy of ap and validates the result. Doctor and
// patient changes are honoured for admins only.
func (uc *EditAppointment) plan(ctx context.Context, c identity.Caller, ap *models.Appointment, in EditAppointmentInput) (models.Appointment, error) {
	next := *ap
	next.Date, next.Time = in.Date, in.Time
	next.Location, next.Reason = in.Location, in.Reason

	f := domain.BookingFields(in.Date, in.Time, in.Location, in.Reason, uc.Clock.Today())
	if c.IsAdmin() {
		if in.DoctorID != nil && *in.DoctorID != ap.DoctorID {
			if ok, err := uc.doctorExists(ctx, *in.DoctorID); err != nil {
				return next, err
			} else if !ok {
				f.Add("doctor_id", "does not exist")
			}
			next.DoctorID = *in.DoctorID
		}
		if in.PatientID != nil {
			if ok, err := uc.patientExists(ctx, *in.PatientID); err != nil {
				return next, err
			} else if !ok {
				f.Add("patient_id", "does not exist")
			}
			pid := *in.PatientID
			next.PatientID = &pid
		}
	}
	return next, f.Err()
}
