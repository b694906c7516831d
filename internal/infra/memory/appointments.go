package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func (s *Store) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return s.write(ctx, func() error {
		if s.slotTaken(ap) {
			return httperr.ErrSlotUnavailable
		}
		ap.ID = s.id()
		ap.CreatedAt = time.Now()
		ap.UpdatedAt = ap.CreatedAt
		s.appointments[ap.ID] = *ap
		return nil
	})
}

func (s *Store) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var (
		ap models.Appointment
		ok bool
	)
	s.read(ctx, func() { ap, ok = s.appointments[id] })
	if !ok {
		return nil, httperr.ErrNotFound("appointment")
	}
	return &ap, nil
}

// GetAppointmentForUpdate needs no row lock: a transaction already holds the
// store mutex.
func (s *Store) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.GetAppointment(ctx, id)
}

func (s *Store) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return s.write(ctx, func() error {
		if _, ok := s.appointments[ap.ID]; !ok {
			return httperr.ErrNotFound("appointment")
		}
		if s.slotTaken(ap) {
			return httperr.ErrSlotUnavailable
		}
		ap.UpdatedAt = time.Now()
		s.appointments[ap.ID] = *ap
		return nil
	})
}

func (s *Store) DeleteAppointment(ctx context.Context, id uint) error {
	return s.write(ctx, func() error {
		if _, ok := s.appointments[id]; !ok {
			return httperr.ErrNotFound("appointment")
		}
		delete(s.appointments, id)
		return nil
	})
}

func (s *Store) ListAppointments(ctx context.Context, f appointment.Filter) ([]models.Appointment, error) {
	var out []models.Appointment
	s.read(ctx, func() {
		for _, ap := range s.appointments {
			if f.DoctorID != nil && ap.DoctorID != *f.DoctorID {
				continue
			}
			if f.PatientID != nil && (ap.PatientID == nil || *ap.PatientID != *f.PatientID) {
				continue
			}
			if f.From != "" && ap.Date < f.From {
				continue
			}
			if f.To != "" && ap.Date > f.To {
				continue
			}
			out = append(out, ap)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// slotTaken mirrors the unique index on (doctor_id, date, time).
func (s *Store) slotTaken(ap *models.Appointment) bool {
	for id, other := range s.appointments {
		if id == ap.ID {
			continue
		}
		if other.DoctorID == ap.DoctorID && other.Date == ap.Date && other.Time == ap.Time {
			return true
		}
	}
	return false
}
