package schedule

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type UnassignTemplateInput struct {
	TemplateID uint
	DoctorID   uint
	ActorID    uint
}

type UnassignTemplate struct {
	Deps
}

func NewUnassignTemplate(d Deps) *UnassignTemplate {
	return &UnassignTemplate{Deps: d}
}

// Execute deletes every slot the template produced for the doctor, booked or
// not, and returns how many were removed.
func (uc *UnassignTemplate) Execute(ctx context.Context, in UnassignTemplateInput) (deleted int64, err error) {
	ctx, op := uc.Obs.Start(ctx, "unassign_template",
		attribute.Int64("doctor.id", int64(in.DoctorID)),
		attribute.Int64("template.id", int64(in.TemplateID)),
	)
	defer func() {
		op.End(err, zap.Uint("doctor_id", in.DoctorID), zap.Uint("template_id", in.TemplateID))
	}()

	f := map[string]string{}
	if in.TemplateID == 0 {
		f["template_id"] = "is required"
	}
	if in.DoctorID == 0 {
		f["doctor_id"] = "is required"
	}
	if len(f) > 0 {
		return 0, httperr.ErrValidation(f)
	}

	booked := 0
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.Doctors.LockDoctor(ctx, in.DoctorID); err != nil {
			if httperr.IsNotFound(err) {
				return httperr.ErrField("doctor_id", "does not exist")
			}
			return err
		}

		slots, err := uc.Slots.ListDoctorSlots(ctx, in.DoctorID, &in.TemplateID)
		if err != nil {
			return err
		}
		for _, s := range slots {
			if s.Status == domain.SlotBooked {
				booked++
			}
		}

		deleted, err = uc.Slots.DeleteAssignment(ctx, in.TemplateID, in.DoctorID)
		return err
	})
	if err != nil {
		return 0, err
	}

	if booked > 0 && uc.Obs.Log != nil {
		uc.Obs.Log.Warn("unassigned template had booked slots",
			zap.Uint("doctor_id", in.DoctorID),
			zap.Uint("template_id", in.TemplateID),
			zap.Int("booked", booked),
		)
	}

	uc.Audit.Dispatch(audit.Event{
		DoctorID: &in.DoctorID,
		UserID:   &in.ActorID,
		Action:   "template_unassigned",
		Entity:   "schedule_template",
		EntityID: &in.TemplateID,
		Metadata: map[string]any{"deleted": deleted, "booked": booked},
	})

	return deleted, nil
}
