package hold

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
)

type PurgeResult struct {
	Deleted    int64  `json:"deleted"`
	ArchiveKey string `json:"archive_key,omitempty"`
}

type PurgeHistory struct {
	Deps
}

func NewPurgeHistory(d Deps) *PurgeHistory {
	return &PurgeHistory{Deps: d}
}

// Execute deletes every approved or rejected request. Pending ones stay.
// With an archiver configured the rows are archived first and a failed
// archive leaves everything in place.
func (uc *PurgeHistory) Execute(ctx context.Context, c identity.Caller) (res PurgeResult, err error) {
	if err := requireAdmin(c); err != nil {
		return PurgeResult{}, err
	}

	ctx, op := uc.Obs.Start(ctx, "purge_hold_history")
	defer func() { op.End(err, zap.Int64("deleted", res.Deleted)) }()

	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		decided, _, err := uc.Holds.ListHolds(ctx, domain.Filter{
			Statuses: []domain.Status{domain.StatusApproved, domain.StatusRejected},
		})
		if err != nil {
			return err
		}
		if len(decided) == 0 {
			return nil
		}

		if uc.Archiver != nil {
			key, err := uc.Archiver.ArchiveHolds(ctx, decided)
			if err != nil {
				return fmt.Errorf("archive hold history: %w", err)
			}
			res.ArchiveKey = key
		}

		ids := make([]uint, len(decided))
		for i, r := range decided {
			ids[i] = r.ID
		}
		res.Deleted, err = uc.Holds.DeleteHolds(ctx, ids)
		return err
	})
	if err != nil {
		return PurgeResult{}, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &c.UserID,
		Action:   "hold_history_purged",
		Entity:   "hold_request",
		Metadata: map[string]any{"deleted": res.Deleted, "archive_key": res.ArchiveKey},
	})

	return res, nil
}
