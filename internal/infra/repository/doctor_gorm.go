package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

func (r *DoctorGormRepository) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := conn(ctx, r.db).First(&d, id).Error; err != nil {
		return nil, notFound(err, "doctor")
	}
	return &d, nil
}

func (r *DoctorGormRepository) LockDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error; err != nil {
		return nil, notFound(err, "doctor")
	}
	return &d, nil
}

var _ doctor.Repository = (*DoctorGormRepository)(nil)
