package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/txn"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/observability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const DefaultMaxRangeDays = 62

type Deps struct {
	Tx           txn.Manager
	Appointments domain.Repository
	Slots        slot.Repository
	Schedule     schedule.SlotRepository
	Doctors      doctor.Repository
	Clock        timezone.Clock
	Audit        *audit.Dispatcher
	Notifier     *notify.Notifier
	Obs          observability.Observer

	// MaxRangeDays caps availability queries. Zero means DefaultMaxRangeDays.
	MaxRangeDays int
}

func (d Deps) maxRangeDays() int {
	if d.MaxRangeDays <= 0 {
		return DefaultMaxRangeDays
	}
	return d.MaxRangeDays
}

// load fetches an appointment the caller may see. Foreign appointments are
// reported as missing.
func (d Deps) load(ctx context.Context, c identity.Caller, id uint) (*models.Appointment, error) {
	ap, err := d.Appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return authorize(c, ap)
}

// loadForUpdate is load with the row locked. Must run inside a tx.
func (d Deps) loadForUpdate(ctx context.Context, c identity.Caller, id uint) (*models.Appointment, error) {
	ap, err := d.Appointments.GetAppointmentForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return authorize(c, ap)
}

func authorize(c identity.Caller, ap *models.Appointment) (*models.Appointment, error) {
	if !domain.CanAccess(c, ap) {
		return nil, httperr.ErrNotFound("appointment")
	}
	return ap, nil
}

// book locks and books the slot covering doctor/date/time. Must run inside a tx.
func (d Deps) book(ctx context.Context, doctorID uint, date, at string) error {
	q, err := slot.NewQuery(doctorID, date, at)
	if err != nil {
		return err
	}
	if _, err := slot.BookAt(ctx, d.Slots, q); err != nil {
		return err
	}
	return nil
}

// release frees the slot covering doctor/date/time, if there still is one.
func (d Deps) release(ctx context.Context, doctorID uint, date, at string) error {
	q, err := slot.NewQuery(doctorID, date, at)
	if err != nil {
		return err
	}
	return slot.ReleaseAt(ctx, d.Slots, q)
}

func (d Deps) doctorExists(ctx context.Context, id uint) (bool, error) {
	if _, err := d.Doctors.GetDoctor(ctx, id); err != nil {
		if httperr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d Deps) patientExists(ctx context.Context, id uint) (bool, error) {
	if _, err := d.Appointments.GetPatient(ctx, id); err != nil {
		if httperr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
