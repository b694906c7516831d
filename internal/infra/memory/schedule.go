package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// --------------------------------------------------
// Templates
// --------------------------------------------------

func (s *Store) CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	return s.write(ctx, func() error {
		t.ID = s.id()
		t.CreatedAt = time.Now()
		t.UpdatedAt = t.CreatedAt
		s.templates[t.ID] = copyTemplate(*t)
		return nil
	})
}

func (s *Store) GetTemplate(ctx context.Context, id uint) (*models.ScheduleTemplate, error) {
	var (
		t  models.ScheduleTemplate
		ok bool
	)
	s.read(ctx, func() { t, ok = s.templates[id] })
	if !ok {
		return nil, httperr.ErrNotFound("template")
	}
	t = copyTemplate(t)
	return &t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error) {
	var out []models.ScheduleTemplate
	s.read(ctx, func() {
		for _, t := range s.templates {
			out = append(out, copyTemplate(t))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	return s.write(ctx, func() error {
		if _, ok := s.templates[t.ID]; !ok {
			return httperr.ErrNotFound("template")
		}
		t.UpdatedAt = time.Now()
		s.templates[t.ID] = copyTemplate(*t)
		return nil
	})
}

func (s *Store) DeleteTemplate(ctx context.Context, id uint) error {
	return s.write(ctx, func() error {
		if _, ok := s.templates[id]; !ok {
			return httperr.ErrNotFound("template")
		}
		delete(s.templates, id)
		return nil
	})
}

func (s *Store) CountTemplates(ctx context.Context) (int64, error) {
	var n int64
	s.read(ctx, func() { n = int64(len(s.templates)) })
	return n, nil
}

func copyTemplate(t models.ScheduleTemplate) models.ScheduleTemplate {
	t.Weekdays = append([]int(nil), t.Weekdays...)
	return t
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (s *Store) ListDoctorSlots(ctx context.Context, doctorID uint, templateID *uint) ([]models.DoctorSlot, error) {
	return s.filterSlots(ctx, func(ds models.DoctorSlot) bool {
		return ds.DoctorID == doctorID && (templateID == nil || ds.TemplateID == *templateID)
	}), nil
}

func (s *Store) ListDoctorSlotsOn(ctx context.Context, doctorID uint, weekdays []int) ([]models.DoctorSlot, error) {
	days := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		days[d] = true
	}
	return s.filterSlots(ctx, func(ds models.DoctorSlot) bool {
		return ds.DoctorID == doctorID && days[ds.Weekday]
	}), nil
}

func (s *Store) CreateSlots(ctx context.Context, slots []models.DoctorSlot) error {
	return s.write(ctx, func() error {
		now := time.Now()
		for i := range slots {
			slots[i].ID = s.id()
			slots[i].CreatedAt = now
			slots[i].UpdatedAt = now
			s.slots[slots[i].ID] = slots[i]
		}
		return nil
	})
}

func (s *Store) DeleteAssignment(ctx context.Context, templateID, doctorID uint) (int64, error) {
	var n int64
	err := s.write(ctx, func() error {
		for id, ds := range s.slots {
			if ds.TemplateID == templateID && ds.DoctorID == doctorID {
				delete(s.slots, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) CountTemplateSlots(ctx context.Context, templateID uint) (int64, error) {
	var n int64
	s.read(ctx, func() {
		for _, ds := range s.slots {
			if ds.TemplateID == templateID {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) FindForUpdate(ctx context.Context, q slot.Query) (*models.DoctorSlot, error) {
	matches := s.filterSlots(ctx, func(ds models.DoctorSlot) bool {
		return q.Matches(&ds)
	})
	if len(matches) == 0 {
		return nil, httperr.ErrNotFound("slot")
	}
	for _, m := range matches {
		if m.SlotDate != nil {
			return &m, nil
		}
	}
	return &matches[0], nil
}

func (s *Store) SaveSlot(ctx context.Context, ds *models.DoctorSlot) error {
	return s.write(ctx, func() error {
		if _, ok := s.slots[ds.ID]; !ok {
			return httperr.ErrNotFound("slot")
		}
		ds.UpdatedAt = time.Now()
		s.slots[ds.ID] = *ds
		return nil
	})
}

func (s *Store) filterSlots(ctx context.Context, keep func(models.DoctorSlot) bool) []models.DoctorSlot {
	var out []models.DoctorSlot
	s.read(ctx, func() {
		for _, ds := range s.slots {
			if keep(ds) {
				out = append(out, ds)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
