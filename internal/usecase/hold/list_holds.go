package hold

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type ListHoldsInput struct {
	DoctorID   *uint
	TargetDate string
	Page       int
	PerPage    int
}

type Page struct {
	Items   []models.HoldRequest `json:"items"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}

type ListHolds struct {
	Deps
}

func NewListHolds(d Deps) *ListHolds {
	return &ListHolds{Deps: d}
}

// Pending lists the admin queue.
func (uc *ListHolds) Pending(ctx context.Context, c identity.Caller, in ListHoldsInput) (Page, error) {
	if err := requireAdmin(c); err != nil {
		return Page{}, err
	}
	return uc.list(ctx, in, domain.StatusPending)
}

// History lists decided requests.
func (uc *ListHolds) History(ctx context.Context, c identity.Caller, in ListHoldsInput) (Page, error) {
	if err := requireAdmin(c); err != nil {
		return Page{}, err
	}
	return uc.list(ctx, in, domain.StatusApproved, domain.StatusRejected)
}

// Mine lists the calling doctor's requests in any status.
func (uc *ListHolds) Mine(ctx context.Context, c identity.Caller, in ListHoldsInput) (Page, error) {
	doctorID, err := requireDoctor(c)
	if err != nil {
		return Page{}, err
	}
	in.DoctorID = &doctorID
	return uc.list(ctx, in)
}

// Counters tallies requests by status: all of them for admins, their own for doctors.
func (uc *ListHolds) Counters(ctx context.Context, c identity.Caller) (domain.Counters, error) {
	if c.IsAdmin() {
		return uc.Holds.CountHolds(ctx, nil)
	}
	doctorID, err := requireDoctor(c)
	if err != nil {
		return domain.Counters{}, err
	}
	return uc.Holds.CountHolds(ctx, &doctorID)
}

func (uc *ListHolds) list(ctx context.Context, in ListHoldsInput, statuses ...domain.Status) (Page, error) {
	if in.TargetDate != "" {
		f := validators.Fields{}
		f.Date("target_date", in.TargetDate)
		if err := f.Err(); err != nil {
			return Page{}, err
		}
	}

	page, perPage := in.Page, in.PerPage
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, total, err := uc.Holds.ListHolds(ctx, domain.Filter{
		Statuses:   statuses,
		DoctorID:   in.DoctorID,
		TargetDate: in.TargetDate,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []models.HoldRequest{}
	}
	return Page{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}
