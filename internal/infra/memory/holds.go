package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func (s *Store) CreateHold(ctx context.Context, r *models.HoldRequest) error {
	return s.write(ctx, func() error {
		r.ID = s.id()
		r.CreatedAt = time.Now()
		r.UpdatedAt = r.CreatedAt
		s.holds[r.ID] = *r
		return nil
	})
}

func (s *Store) GetHoldForUpdate(ctx context.Context, id uint) (*models.HoldRequest, error) {
	var (
		r  models.HoldRequest
		ok bool
	)
	s.read(ctx, func() { r, ok = s.holds[id] })
	if !ok {
		return nil, httperr.ErrNotFound("hold_request")
	}
	return &r, nil
}

func (s *Store) SaveHold(ctx context.Context, r *models.HoldRequest) error {
	return s.write(ctx, func() error {
		if _, ok := s.holds[r.ID]; !ok {
			return httperr.ErrNotFound("hold_request")
		}
		r.UpdatedAt = time.Now()
		s.holds[r.ID] = *r
		return nil
	})
}

func (s *Store) ListHolds(ctx context.Context, f hold.Filter) ([]models.HoldRequest, int64, error) {
	statuses := make(map[string]bool, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses[string(st)] = true
	}

	var all []models.HoldRequest
	s.read(ctx, func() {
		for _, r := range s.holds {
			if len(statuses) > 0 && !statuses[r.Status] {
				continue
			}
			if f.DoctorID != nil && r.DoctorID != *f.DoctorID {
				continue
			}
			if f.TargetDate != "" && r.TargetDate != f.TargetDate {
				continue
			}
			all = append(all, r)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if f.PerPage <= 0 {
		return all, total, nil
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.PerPage
	if start >= len(all) {
		return []models.HoldRequest{}, total, nil
	}
	end := start + f.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) CountHolds(ctx context.Context, doctorID *uint) (hold.Counters, error) {
	var c hold.Counters
	s.read(ctx, func() {
		for _, r := range s.holds {
			if doctorID != nil && r.DoctorID != *doctorID {
				continue
			}
			switch hold.Status(r.Status) {
			case hold.StatusPending:
				c.Pending++
			case hold.StatusApproved:
				c.Approved++
			case hold.StatusRejected:
				c.Rejected++
			}
		}
	})
	return c, nil
}

func (s *Store) DeleteHolds(ctx context.Context, ids []uint) (int64, error) {
	var n int64
	err := s.write(ctx, func() error {
		for _, id := range ids {
			if _, ok := s.holds[id]; ok {
				delete(s.holds, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
