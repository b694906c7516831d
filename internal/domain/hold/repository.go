package hold

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Filter narrows listings. Statuses empty means any status.
type Filter struct {
	Statuses   []Status
	DoctorID   *uint
	TargetDate string
	Page       int
	PerPage    int
}

type Counters struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type Repository interface {
	CreateHold(ctx context.Context, r *models.HoldRequest) error
	// GetHoldForUpdate locks the request row.
	GetHoldForUpdate(ctx context.Context, id uint) (*models.HoldRequest, error)
	SaveHold(ctx context.Context, r *models.HoldRequest) error
	ListHolds(ctx context.Context, f Filter) ([]models.HoldRequest, int64, error)
	CountHolds(ctx context.Context, doctorID *uint) (Counters, error)
	DeleteHolds(ctx context.Context, ids []uint) (int64, error)
}
