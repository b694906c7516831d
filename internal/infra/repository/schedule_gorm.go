package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Templates
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	return conn(ctx, r.db).Create(t).Error
}

func (r *ScheduleGormRepository) GetTemplate(ctx context.Context, id uint) (*models.ScheduleTemplate, error) {
	var t models.ScheduleTemplate
	if err := conn(ctx, r.db).First(&t, id).Error; err != nil {
		return nil, notFound(err, "template")
	}
	return &t, nil
}

func (r *ScheduleGormRepository) ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error) {
	var list []models.ScheduleTemplate
	if err := conn(ctx, r.db).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ScheduleGormRepository) UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	return conn(ctx, r.db).Save(t).Error
}

func (r *ScheduleGormRepository) DeleteTemplate(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.ScheduleTemplate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("template")
	}
	return nil
}

func (r *ScheduleGormRepository) CountTemplates(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.ScheduleTemplate{}).Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *ScheduleGormRepository) ListDoctorSlots(ctx context.Context, doctorID uint, templateID *uint) ([]models.DoctorSlot, error) {
	q := conn(ctx, r.db).Where("doctor_id = ?", doctorID)
	if templateID != nil {
		q = q.Where("template_id = ?", *templateID)
	}

	var list []models.DoctorSlot
	if err := q.Order("weekday ASC, start_time ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ScheduleGormRepository) ListDoctorSlotsOn(ctx context.Context, doctorID uint, weekdays []int) ([]models.DoctorSlot, error) {
	var list []models.DoctorSlot
	if err := conn(ctx, r.db).
		Where("doctor_id = ? AND weekday IN ?", doctorID, weekdays).
		Order("weekday ASC, start_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ScheduleGormRepository) CreateSlots(ctx context.Context, slots []models.DoctorSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return conn(ctx, r.db).CreateInBatches(slots, 100).Error
}

func (r *ScheduleGormRepository) DeleteAssignment(ctx context.Context, templateID, doctorID uint) (int64, error) {
	res := conn(ctx, r.db).
		Where("template_id = ? AND doctor_id = ?", templateID, doctorID).
		Delete(&models.DoctorSlot{})
	return res.RowsAffected, res.Error
}

func (r *ScheduleGormRepository) CountTemplateSlots(ctx context.Context, templateID uint) (int64, error) {
	var n int64
	err := conn(ctx, r.db).
		Model(&models.DoctorSlot{}).
		Where("template_id = ?", templateID).
		Count(&n).Error
	return n, err
}

// FindForUpdate locks the slot covering q. Pinned slots sort first.
func (r *ScheduleGormRepository) FindForUpdate(ctx context.Context, q slot.Query) (*models.DoctorSlot, error) {
	var s models.DoctorSlot
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND start_time <= ? AND end_time > ?", q.DoctorID, q.Time, q.Time).
		Where("((slot_date IS NULL AND weekday = ?) OR slot_date = ?)", q.Weekday, q.Date).
		Order("slot_date IS NULL, id").
		Take(&s).Error; err != nil {
		return nil, notFound(err, "slot")
	}
	return &s, nil
}

func (r *ScheduleGormRepository) SaveSlot(ctx context.Context, s *models.DoctorSlot) error {
	return conn(ctx, r.db).
		Model(s).
		Update("status", s.Status).Error
}

// Compile-time check
var (
	_ schedule.TemplateRepository = (*ScheduleGormRepository)(nil)
	_ schedule.SlotRepository     = (*ScheduleGormRepository)(nil)
	_ slot.Repository             = (*ScheduleGormRepository)(nil)
)
