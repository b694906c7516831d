package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// AddDoctor registers a doctor profile and returns it with its id.
func (s *Store) AddDoctor(d models.Doctor) models.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.id()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.doctors[d.ID] = d
	return d
}

func (s *Store) AddPatient(p models.Patient) models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.patients[p.ID] = p
	return p
}

func (s *Store) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var (
		d  models.Doctor
		ok bool
	)
	s.read(ctx, func() { d, ok = s.doctors[id] })
	if !ok {
		return nil, httperr.ErrNotFound("doctor")
	}
	return &d, nil
}

// LockDoctor is GetDoctor; the store lock already serializes transactions.
func (s *Store) LockDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	return s.GetDoctor(ctx, id)
}

func (s *Store) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var (
		p  models.Patient
		ok bool
	)
	s.read(ctx, func() { p, ok = s.patients[id] })
	if !ok {
		return nil, httperr.ErrNotFound("patient")
	}
	return &p, nil
}
