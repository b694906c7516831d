package schedule

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type TemplateRepository interface {
	CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error
	GetTemplate(ctx context.Context, id uint) (*models.ScheduleTemplate, error)
	ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error)
	UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) error
	DeleteTemplate(ctx context.Context, id uint) error
	CountTemplates(ctx context.Context) (int64, error)
}

type SlotRepository interface {
	// templateID narrows the result when non-nil.
	ListDoctorSlots(ctx context.Context, doctorID uint, templateID *uint) ([]models.DoctorSlot, error)
	ListDoctorSlotsOn(ctx context.Context, doctorID uint, weekdays []int) ([]models.DoctorSlot, error)
	CreateSlots(ctx context.Context, slots []models.DoctorSlot) error
	DeleteAssignment(ctx context.Context, templateID, doctorID uint) (int64, error)
	CountTemplateSlots(ctx context.Context, templateID uint) (int64, error)
}
