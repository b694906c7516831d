package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// AVAILABLE SLOTS
// ======================================================

type GetAvailableSlotsInput struct {
	DoctorID  uint
	StartDate string
	EndDate   string
}

type GetAvailableSlots struct {
	Deps
}

func NewGetAvailableSlots(d Deps) *GetAvailableSlots {
	return &GetAvailableSlots{Deps: d}
}

// Execute lists the doctor's free slots on every date of [StartDate, EndDate].
func (uc *GetAvailableSlots) Execute(ctx context.Context, in GetAvailableSlotsInput) ([]domain.TimeSlot, error) {
	if _, err := uc.Doctors.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	f := validators.Fields{}
	f.Date("start_date", in.StartDate)
	f.Date("end_date", in.EndDate)
	if err := f.Err(); err != nil {
		return nil, err
	}

	from, _ := time.Parse(validators.DateLayout, in.StartDate)
	to, _ := time.Parse(validators.DateLayout, in.EndDate)
	if to.Before(from) {
		f.Add("end_date", "must not be before start_date")
	} else if days := int(to.Sub(from).Hours()/24) + 1; days > uc.maxRangeDays() {
		f.Add("end_date", fmt.Sprintf("range must not exceed %d days", uc.maxRangeDays()))
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	slots, err := uc.Schedule.ListDoctorSlots(ctx, in.DoctorID, nil)
	if err != nil {
		return nil, err
	}

	booked, err := uc.Appointments.ListAppointments(ctx, domain.Filter{
		DoctorID: &in.DoctorID,
		From:     in.StartDate,
		To:       in.EndDate,
	})
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, ap := range booked {
		taken[domain.TakenKey(ap.Date, ap.Time)] = true
	}

	open := domain.OpenSlots(from, to, slots, taken)
	if open == nil {
		open = []domain.TimeSlot{}
	}
	return open, nil
}

// ======================================================
// SINGLE SLOT CHECK
// ======================================================

type CheckSlotInput struct {
	DoctorID uint
	Date     string
	Time     string
}

type CheckSlot struct {
	Deps
}

func NewCheckSlot(d Deps) *CheckSlot {
	return &CheckSlot{Deps: d}
}

// Execute reports whether a booking at doctor/date/time would currently succeed.
func (uc *CheckSlot) Execute(ctx context.Context, in CheckSlotInput) (bool, error) {
	if _, err := uc.Doctors.GetDoctor(ctx, in.DoctorID); err != nil {
		return false, err
	}

	f := validators.Fields{}
	f.Date("date", in.Date)
	f.Clock("time", in.Time)
	if err := f.Err(); err != nil {
		return false, err
	}

	q, err := slot.NewQuery(in.DoctorID, in.Date, in.Time)
	if err != nil {
		return false, err
	}

	available := false
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		s, err := uc.Slots.FindForUpdate(ctx, q)
		if err != nil {
			if httperr.IsNotFound(err) {
				return nil
			}
			return err
		}
		if slot.State(s.Status) != slot.StateAvailable {
			return nil
		}

		existing, err := uc.Appointments.ListAppointments(ctx, domain.Filter{
			DoctorID: &in.DoctorID,
			From:     in.Date,
			To:       in.Date,
		})
		if err != nil {
			return err
		}
		for _, ap := range existing {
			if ap.Time == in.Time {
				return nil
			}
		}
		available = true
		return nil
	})
	return available, err
}
