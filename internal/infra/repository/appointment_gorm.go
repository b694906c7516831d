package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return slotTaken(conn(ctx, r.db).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := conn(ctx, r.db).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&ap).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

// UpdateAppointment writes the editable columns of an existing row. A row
// deleted in the meantime is reported as NotFound, never re-inserted.
func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	res := conn(ctx, r.db).
		Model(ap).
		Select("doctor_id", "patient_id", "date", "time", "location", "reason", "updated_at").
		Updates(ap)
	if res.Error != nil {
		return slotTaken(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment")
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(ctx context.Context, f domain.Filter) ([]models.Appointment, error) {
	q := conn(ctx, r.db)
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, time ASC, id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	if err := conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, notFound(err, "patient")
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
