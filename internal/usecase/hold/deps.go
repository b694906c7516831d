package hold

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/txn"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/observability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Archiver keeps a copy of purged requests. It returns where they went.
type Archiver interface {
	ArchiveHolds(ctx context.Context, requests []models.HoldRequest) (string, error)
}

type Deps struct {
	Tx           txn.Manager
	Holds        domain.Repository
	Slots        slot.Repository
	Appointments appointment.Repository
	Clock        timezone.Clock
	Audit        *audit.Dispatcher
	Notifier     *notify.Notifier
	Obs          observability.Observer

	// Archiver is optional; without one purged requests are just deleted.
	Archiver Archiver
}

func requireDoctor(c identity.Caller) (uint, error) {
	if c.Role != identity.RoleDoctor || c.DoctorID == nil {
		return 0, httperr.ErrNotFound("doctor")
	}
	return *c.DoctorID, nil
}

func requireAdmin(c identity.Caller) error {
	if !c.IsAdmin() {
		return httperr.ErrNotFound("hold_request")
	}
	return nil
}
