package schedule

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AssignTemplateInput struct {
	TemplateID uint
	DoctorID   uint
	// Date pins the assignment to one calendar day when set.
	Date    *string
	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type AssignTemplate struct {
	Deps
}

func NewAssignTemplate(d Deps) *AssignTemplate {
	return &AssignTemplate{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute expands the template into the doctor's slots. Any overlap with an
// existing slot rejects the whole assignment with a ConflictError.
func (uc *AssignTemplate) Execute(ctx context.Context, in AssignTemplateInput) (created []models.DoctorSlot, err error) {
	ctx, op := uc.Obs.Start(ctx, "assign_template",
		attribute.Int64("doctor.id", int64(in.DoctorID)),
		attribute.Int64("template.id", int64(in.TemplateID)),
	)
	defer func() {
		op.End(err, zap.Uint("doctor_id", in.DoctorID), zap.Uint("template_id", in.TemplateID))
	}()

	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		a, conflicts, err := uc.plan(ctx, in.TemplateID, in.DoctorID, in.Date, true)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			uc.Obs.AssignmentConflict()
			return httperr.ErrConflict(conflicts)
		}

		slots, err := a.Expand()
		if err != nil {
			return err
		}
		if err := uc.Slots.CreateSlots(ctx, slots); err != nil {
			return err
		}
		created = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		DoctorID: &in.DoctorID,
		UserID:   &in.ActorID,
		Action:   "template_assigned",
		Entity:   "schedule_template",
		EntityID: &in.TemplateID,
		Metadata: map[string]any{"slots": len(created), "date": in.Date},
	})

	return created, nil
}

// ======================================================
// DRY RUN
// ======================================================

type CheckConflicts struct {
	Deps
}

func NewCheckConflicts(d Deps) *CheckConflicts {
	return &CheckConflicts{Deps: d}
}

// Execute reports the overlaps an assignment would hit without writing anything.
func (uc *CheckConflicts) Execute(ctx context.Context, in AssignTemplateInput) ([]domain.Conflict, error) {
	_, conflicts, err := uc.plan(ctx, in.TemplateID, in.DoctorID, in.Date, false)
	if err != nil {
		return nil, err
	}
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	return conflicts, nil
}
