package schedule

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/txn"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/observability"
)

type Deps struct {
	Tx        txn.Manager
	Templates domain.TemplateRepository
	Slots     domain.SlotRepository
	Doctors   doctor.Repository
	Audit     *audit.Dispatcher
	Obs       observability.Observer
}

// plan loads the doctor and template and checks the candidate assignment
// against the doctor's current slots. Unknown ids are input errors here.
func (d Deps) plan(ctx context.Context, templateID, doctorID uint, date *string, lock bool) (domain.Assignment, []domain.Conflict, error) {
	f := map[string]string{}
	if templateID == 0 {
		f["template_id"] = "is required"
	}
	if doctorID == 0 {
		f["doctor_id"] = "is required"
	}
	if len(f) > 0 {
		return domain.Assignment{}, nil, httperr.ErrValidation(f)
	}

	getDoctor := d.Doctors.GetDoctor
	if lock {
		getDoctor = d.Doctors.LockDoctor
	}
	if _, err := getDoctor(ctx, doctorID); err != nil {
		if httperr.IsNotFound(err) {
			return domain.Assignment{}, nil, httperr.ErrField("doctor_id", "does not exist")
		}
		return domain.Assignment{}, nil, err
	}

	tpl, err := d.Templates.GetTemplate(ctx, templateID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return domain.Assignment{}, nil, httperr.ErrField("template_id", "does not exist")
		}
		return domain.Assignment{}, nil, err
	}

	a := domain.Assignment{Template: tpl, DoctorID: doctorID, Date: date}
	weekdays, err := a.Weekdays()
	if err != nil {
		return a, nil, err
	}

	existing, err := d.Slots.ListDoctorSlotsOn(ctx, doctorID, weekdays)
	if err != nil {
		return a, nil, err
	}

	names, err := d.templateNames(ctx, existing)
	if err != nil {
		return a, nil, err
	}

	conflicts, err := a.Conflicts(existing, names)
	return a, conflicts, err
}

func (d Deps) templateNames(ctx context.Context, slots []models.DoctorSlot) (map[uint]string, error) {
	names := map[uint]string{}
	for _, s := range slots {
		if _, ok := names[s.TemplateID]; ok {
			continue
		}
		t, err := d.Templates.GetTemplate(ctx, s.TemplateID)
		if err != nil {
			if httperr.IsNotFound(err) {
				names[s.TemplateID] = ""
				continue
			}
			return nil, err
		}
		names[s.TemplateID] = t.Name
	}
	return names, nil
}

// resolveDoctor picks whose schedule the caller may read: doctors only see
// their own, admins name one explicitly.
func (d Deps) resolveDoctor(ctx context.Context, c identity.Caller, requested uint) (uint, error) {
	switch {
	case c.Role == identity.RoleDoctor && c.DoctorID != nil:
		return *c.DoctorID, nil
	case c.IsAdmin():
		if requested == 0 {
			return 0, httperr.ErrField("doctor_id", "is required")
		}
		if _, err := d.Doctors.GetDoctor(ctx, requested); err != nil {
			return 0, err
		}
		return requested, nil
	}
	return 0, httperr.ErrNotFound("doctor")
}
