package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type HoldGormRepository struct {
	db *gorm.DB
}

func NewHoldGormRepository(db *gorm.DB) *HoldGormRepository {
	return &HoldGormRepository{db: db}
}

func (r *HoldGormRepository) CreateHold(ctx context.Context, h *models.HoldRequest) error {
	return conn(ctx, r.db).Create(h).Error
}

func (r *HoldGormRepository) GetHoldForUpdate(ctx context.Context, id uint) (*models.HoldRequest, error) {
	var h models.HoldRequest
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&h, id).Error; err != nil {
		return nil, notFound(err, "hold_request")
	}
	return &h, nil
}

func (r *HoldGormRepository) SaveHold(ctx context.Context, h *models.HoldRequest) error {
	return conn(ctx, r.db).Save(h).Error
}

func (r *HoldGormRepository) ListHolds(ctx context.Context, f hold.Filter) ([]models.HoldRequest, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if len(f.Statuses) > 0 {
			statuses := make([]string, 0, len(f.Statuses))
			for _, s := range f.Statuses {
				statuses = append(statuses, string(s))
			}
			db = db.Where("status IN ?", statuses)
		}
		if f.DoctorID != nil {
			db = db.Where("doctor_id = ?", *f.DoctorID)
		}
		if f.TargetDate != "" {
			db = db.Where("target_date = ?", f.TargetDate)
		}
		return db
	}

	var total int64
	if err := conn(ctx, r.db).
		Model(&models.HoldRequest{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := conn(ctx, r.db).Scopes(filter).Order("id DESC")
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * f.PerPage).Limit(f.PerPage)
	}

	var list []models.HoldRequest
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *HoldGormRepository) CountHolds(ctx context.Context, doctorID *uint) (hold.Counters, error) {
	q := conn(ctx, r.db).Model(&models.HoldRequest{})
	if doctorID != nil {
		q = q.Where("doctor_id = ?", *doctorID)
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := q.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return hold.Counters{}, err
	}

	var c hold.Counters
	for _, row := range rows {
		switch hold.Status(row.Status) {
		case hold.StatusPending:
			c.Pending = row.Total
		case hold.StatusApproved:
			c.Approved = row.Total
		case hold.StatusRejected:
			c.Rejected = row.Total
		}
	}
	return c, nil
}

func (r *HoldGormRepository) DeleteHolds(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := conn(ctx, r.db).Where("id IN ?", ids).Delete(&models.HoldRequest{})
	return res.RowsAffected, res.Error
}

var _ hold.Repository = (*HoldGormRepository)(nil)
