package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ManageTemplates covers template CRUD. A template that still backs slots
// may be renamed but not reshaped or deleted.
type ManageTemplates struct {
	Deps
}

func NewManageTemplates(d Deps) *ManageTemplates {
	return &ManageTemplates{Deps: d}
}

const codeTemplateAssigned = "template_assigned"

func (uc *ManageTemplates) Create(ctx context.Context, in domain.TemplateInput) (*models.ScheduleTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var t models.ScheduleTemplate
	in.Apply(&t)
	if err := uc.Templates.CreateTemplate(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (uc *ManageTemplates) Get(ctx context.Context, id uint) (*models.ScheduleTemplate, error) {
	return uc.Templates.GetTemplate(ctx, id)
}

func (uc *ManageTemplates) List(ctx context.Context) ([]models.ScheduleTemplate, error) {
	return uc.Templates.ListTemplates(ctx)
}

func (uc *ManageTemplates) Count(ctx context.Context) (int64, error) {
	return uc.Templates.CountTemplates(ctx)
}

func (uc *ManageTemplates) Update(ctx context.Context, id uint, in domain.TemplateInput) (*models.ScheduleTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *models.ScheduleTemplate
	err := uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := uc.Templates.GetTemplate(ctx, id)
		if err != nil {
			return err
		}

		if !in.SameRange(t) {
			n, err := uc.Slots.CountTemplateSlots(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return httperr.ErrBusiness(codeTemplateAssigned)
			}
		}

		in.Apply(t)
		if err := uc.Templates.UpdateTemplate(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	return updated, err
}

func (uc *ManageTemplates) Delete(ctx context.Context, id uint) error {
	return uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.Templates.GetTemplate(ctx, id); err != nil {
			return err
		}
		n, err := uc.Slots.CountTemplateSlots(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return httperr.ErrBusiness(codeTemplateAssigned)
		}
		return uc.Templates.DeleteTemplate(ctx, id)
	})
}
