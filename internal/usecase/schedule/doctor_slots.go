package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListDoctorSlotsInput struct {
	DoctorID   uint
	TemplateID *uint
}

type ListDoctorSlots struct {
	Deps
}

func NewListDoctorSlots(d Deps) *ListDoctorSlots {
	return &ListDoctorSlots{Deps: d}
}

// Execute lists raw slot rows. A doctor caller always gets their own.
func (uc *ListDoctorSlots) Execute(ctx context.Context, c identity.Caller, in ListDoctorSlotsInput) ([]models.DoctorSlot, error) {
	doctorID, err := uc.resolveDoctor(ctx, c, in.DoctorID)
	if err != nil {
		return nil, err
	}
	return uc.Slots.ListDoctorSlots(ctx, doctorID, in.TemplateID)
}

type CompactSchedule struct {
	Deps
}

func NewCompactSchedule(d Deps) *CompactSchedule {
	return &CompactSchedule{Deps: d}
}

// Execute returns the weekly schedule as merged ranges per weekday.
func (uc *CompactSchedule) Execute(ctx context.Context, c identity.Caller, doctorID uint) ([]domain.CompactDay, error) {
	id, err := uc.resolveDoctor(ctx, c, doctorID)
	if err != nil {
		return nil, err
	}
	slots, err := uc.Slots.ListDoctorSlots(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return domain.Compact(slots), nil
}
