package doctor

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	// LockDoctor serializes schedule changes for one doctor.
	LockDoctor(ctx context.Context, id uint) (*models.Doctor, error)
}
