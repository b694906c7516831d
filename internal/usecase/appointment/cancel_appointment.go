package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{Deps: d}
}

// Execute frees the slot and deletes the appointment together.
func (uc *CancelAppointment) Execute(ctx context.Context, c identity.Caller, id uint) (err error) {
	ctx, op := uc.Obs.Start(ctx, "cancel_appointment", attribute.Int64("appointment.id", int64(id)))
	defer func() { op.End(err, zap.Uint("appointment_id", id)) }()

	var ap *models.Appointment
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.loadForUpdate(ctx, c, id)
		if err != nil {
			return err
		}
		if err := uc.release(ctx, ap.DoctorID, ap.Date, ap.Time); err != nil {
			return err
		}
		return uc.Appointments.DeleteAppointment(ctx, ap.ID)
	})
	if err != nil {
		return err
	}
	uc.Obs.SlotReleased()

	uc.Audit.Dispatch(audit.Event{
		DoctorID: &ap.DoctorID,
		UserID:   &c.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"date": ap.Date, "time": ap.Time, "kind": ap.Kind},
	})
	uc.Notifier.Notify(notify.Event{
		Type:          notify.AppointmentCancelled,
		DoctorID:      ap.DoctorID,
		PatientID:     ap.PatientID,
		AppointmentID: &ap.ID,
		Date:          ap.Date,
		Time:          ap.Time,
	})

	return nil
}
