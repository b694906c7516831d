package hold

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateHoldInput struct {
	TargetDate string
	Slots      []models.HoldSlot
}

// ======================================================
// USE CASE
// ======================================================

type CreateHold struct {
	Deps
}

func NewCreateHold(d Deps) *CreateHold {
	return &CreateHold{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute queues a pending request for the calling doctor. Every entry must
// be bookable right now, otherwise the request is refused with the list of
// unavailable entries.
func (uc *CreateHold) Execute(ctx context.Context, c identity.Caller, in CreateHoldInput) (r *models.HoldRequest, err error) {
	doctorID, err := requireDoctor(c)
	if err != nil {
		return nil, err
	}

	ctx, op := uc.Obs.Start(ctx, "create_hold",
		attribute.Int64("doctor.id", int64(doctorID)),
		attribute.String("target_date", in.TargetDate),
	)
	defer func() {
		op.End(err, zap.Uint("doctor_id", doctorID), zap.String("target_date", in.TargetDate))
	}()

	if err := domain.ValidateSlots(in.TargetDate, in.Slots, uc.Clock.Today()); err != nil {
		return nil, err
	}

	r = &models.HoldRequest{
		DoctorID:   doctorID,
		TargetDate: in.TargetDate,
		Slots:      in.Slots,
		Status:     string(domain.StatusPending),
	}
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.precheck(ctx, doctorID, in.Slots); err != nil {
			return err
		}
		return uc.Holds.CreateHold(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		DoctorID: &doctorID,
		UserID:   &c.UserID,
		Action:   "hold_requested",
		Entity:   "hold_request",
		EntityID: &r.ID,
		Metadata: map[string]any{"slots": len(r.Slots)},
	})
	uc.Notifier.Notify(notify.Event{
		Type:          notify.HoldRequested,
		DoctorID:      doctorID,
		HoldRequestID: &r.ID,
		Date:          r.TargetDate,
	})

	return r, nil
}

// precheck flags entries whose slot is missing, already booked or already
// taken by an appointment row.
func (uc *CreateHold) precheck(ctx context.Context, doctorID uint, slots []models.HoldSlot) error {
	f := validators.Fields{}
	for i, hs := range slots {
		start, _, err := domain.ParseRange(hs.Time)
		if err != nil {
			return err
		}
		ok, err := uc.available(ctx, doctorID, hs.Date, start)
		if err != nil {
			return err
		}
		if !ok {
			f.Add(fmt.Sprintf("slots.%d", i), fmt.Sprintf("%s %s is not available", hs.Date, hs.Time))
		}
	}
	return f.Err()
}

func (uc *CreateHold) available(ctx context.Context, doctorID uint, date, start string) (bool, error) {
	q, err := slot.NewQuery(doctorID, date, start)
	if err != nil {
		return false, err
	}
	s, err := uc.Slots.FindForUpdate(ctx, q)
	if err != nil {
		if httperr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if slot.State(s.Status) != slot.StateAvailable {
		return false, nil
	}

	existing, err := uc.Appointments.ListAppointments(ctx, appointment.Filter{
		DoctorID: &doctorID,
		From:     date,
		To:       date,
	})
	if err != nil {
		return false, err
	}
	for _, ap := range existing {
		if ap.Time == start {
			return false, nil
		}
	}
	return true, nil
}
