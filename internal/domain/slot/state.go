package slot

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Slot State
// ===============================

type State string

const (
	StateAvailable State = schedule.SlotAvailable
	StateBooked    State = schedule.SlotBooked
)

// Book moves an available slot to booked.
func Book(s *models.DoctorSlot) error {
	if State(s.Status) != StateAvailable {
		return httperr.ErrSlotUnavailable
	}
	s.Status = string(StateBooked)
	return nil
}

// Release moves a booked slot back to available. It reports whether the
// state changed; releasing an available slot is a no-op.
func Release(s *models.DoctorSlot) bool {
	if State(s.Status) == StateAvailable {
		return false
	}
	s.Status = string(StateAvailable)
	return true
}

// ===============================
// Lookup
// ===============================

// Query locates the slot holding a doctor's calendar date and time.
type Query struct {
	DoctorID uint
	Date     string
	Weekday  int
	Time     string
}

func NewQuery(doctorID uint, date, at string) (Query, error) {
	wd, err := schedule.WeekdayOf(date)
	if err != nil {
		return Query{}, httperr.ErrField("date", "must be a date in YYYY-MM-DD format")
	}
	return Query{DoctorID: doctorID, Date: date, Weekday: wd, Time: at}, nil
}

// Matches reports whether s covers the query: same doctor, start <= time < end,
// and either pinned to the date or recurring on its weekday.
func (q Query) Matches(s *models.DoctorSlot) bool {
	if s.DoctorID != q.DoctorID {
		return false
	}
	if !(s.StartTime <= q.Time && q.Time < s.EndTime) {
		return false
	}
	if s.SlotDate != nil {
		return *s.SlotDate == q.Date
	}
	return s.Weekday == q.Weekday
}

type Repository interface {
	// FindForUpdate locks and returns the slot matching q. A slot pinned to
	// the date wins over a recurring one. Returns a NotFound error when
	// nothing matches.
	FindForUpdate(ctx context.Context, q Query) (*models.DoctorSlot, error)
	SaveSlot(ctx context.Context, s *models.DoctorSlot) error
}

// BookAt locks the slot matching q and books it. A missing slot is reported
// as unavailable.
func BookAt(ctx context.Context, repo Repository, q Query) (*models.DoctorSlot, error) {
	s, err := repo.FindForUpdate(ctx, q)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrSlotUnavailable
		}
		return nil, err
	}
	if err := Book(s); err != nil {
		return nil, err
	}
	if err := repo.SaveSlot(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ReleaseAt frees the slot matching q. A missing slot is not an error.
func ReleaseAt(ctx context.Context, repo Repository, q Query) error {
	s, err := repo.FindForUpdate(ctx, q)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if !Release(s) {
		return nil
	}
	return repo.SaveSlot(ctx, s)
}
