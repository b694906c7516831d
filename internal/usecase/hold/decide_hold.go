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
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type DecideHoldInput struct {
	ID     uint
	Status domain.Status
}

// ======================================================
// USE CASE
// ======================================================

type DecideHold struct {
	Deps
}

func NewDecideHold(d Deps) *DecideHold {
	return &DecideHold{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute approves or rejects a pending request. Approval books every
// requested slot as a reservation in the same transaction as the status
// change; one unavailable slot rolls the whole approval back.
func (uc *DecideHold) Execute(ctx context.Context, c identity.Caller, in DecideHoldInput) (r *models.HoldRequest, err error) {
	if err := requireAdmin(c); err != nil {
		return nil, err
	}

	ctx, op := uc.Obs.Start(ctx, "decide_hold",
		attribute.Int64("hold_request.id", int64(in.ID)),
		attribute.String("status", string(in.Status)),
	)
	defer func() {
		op.End(err, zap.Uint("hold_request_id", in.ID), zap.String("status", string(in.Status)))
	}()

	booked := 0
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		r, err = uc.Holds.GetHoldForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if err := domain.Decide(r, in.Status); err != nil {
			return err
		}

		now := uc.Clock.Now()
		adminID := c.UserID
		r.AdminID = &adminID
		r.DecidedAt = &now

		if domain.Status(r.Status) == domain.StatusApproved {
			n, err := uc.reserve(ctx, r)
			if err != nil {
				return err
			}
			booked = n
		}
		return uc.Holds.SaveHold(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	for i := 0; i < booked; i++ {
		uc.Obs.SlotBooked()
	}

	action, event := "hold_rejected", notify.HoldRejected
	if domain.Status(r.Status) == domain.StatusApproved {
		action, event = "hold_approved", notify.HoldApproved
	}
	uc.Audit.Dispatch(audit.Event{
		DoctorID: &r.DoctorID,
		UserID:   &c.UserID,
		Action:   action,
		Entity:   "hold_request",
		EntityID: &r.ID,
		Metadata: map[string]any{"reserved": booked},
	})
	uc.Notifier.Notify(notify.Event{
		Type:          event,
		DoctorID:      r.DoctorID,
		HoldRequestID: &r.ID,
		Date:          r.TargetDate,
	})

	return r, nil
}

// reserve books every entry of r and records a reservation row per entry.
func (uc *DecideHold) reserve(ctx context.Context, r *models.HoldRequest) (int, error) {
	starts, err := entryStarts(r.Slots)
	if err != nil {
		return 0, err
	}

	for i, hs := range r.Slots {
		q, err := slot.NewQuery(r.DoctorID, hs.Date, starts[i])
		if err != nil {
			return 0, err
		}
		if _, err := slot.BookAt(ctx, uc.Slots, q); err != nil {
			return 0, err
		}

		holdID := r.ID
		ap := &models.Appointment{
			DoctorID:      r.DoctorID,
			Date:          hs.Date,
			Time:          starts[i],
			Location:      "reserved",
			Reason:        fmt.Sprintf("hold request %d (%s)", r.ID, hs.Time),
			Kind:          string(appointment.KindReservation),
			HoldRequestID: &holdID,
		}
		if err := uc.Appointments.CreateAppointment(ctx, ap); err != nil {
			return 0, err
		}
	}
	return len(r.Slots), nil
}

// entryStarts parses the start of every entry, reporting all bad entries at once.
func entryStarts(slots []models.HoldSlot) ([]string, error) {
	f := validators.Fields{}
	if len(slots) == 0 {
		f.Add("slots", "must contain at least one slot")
	}
	starts := make([]string, len(slots))
	for i, hs := range slots {
		if !validators.IsDate(hs.Date) {
			f.Add(fmt.Sprintf("slots.%d.date", i), "must be a date in YYYY-MM-DD format")
		}
		start, _, err := domain.ParseRange(hs.Time)
		if err != nil {
			f.Add(fmt.Sprintf("slots.%d.time", i), "must be a range in HH:MM-HH:MM format")
			continue
		}
		starts[i] = start
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return starts, nil
}
