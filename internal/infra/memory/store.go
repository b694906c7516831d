package memory

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/txn"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Store keeps every aggregate in maps behind one mutex. A transaction holds
// the mutex for its whole duration and restores a snapshot on error, so
// transactions are fully serialized.
type Store struct {
	mu     sync.Mutex
	nextID uint

	doctors      map[uint]models.Doctor
	patients     map[uint]models.Patient
	templates    map[uint]models.ScheduleTemplate
	slots        map[uint]models.DoctorSlot
	appointments map[uint]models.Appointment
	holds        map[uint]models.HoldRequest
}

type txKey struct{ s *Store }

func New() *Store {
	return &Store{
		doctors:      map[uint]models.Doctor{},
		patients:     map[uint]models.Patient{},
		templates:    map[uint]models.ScheduleTemplate{},
		slots:        map[uint]models.DoctorSlot{},
		appointments: map[uint]models.Appointment{},
		holds:        map[uint]models.HoldRequest{},
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{s}).(bool)
	return v
}

// WithinTx implements txn.Manager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	txCtx := context.WithValue(ctx, txKey{s}, true)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	committed = true
	return nil
}

// read runs fn under the store lock unless ctx already holds it.
func (s *Store) read(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	var err error
	s.read(ctx, func() { err = fn() })
	return err
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	nextID       uint
	doctors      map[uint]models.Doctor
	patients     map[uint]models.Patient
	templates    map[uint]models.ScheduleTemplate
	slots        map[uint]models.DoctorSlot
	appointments map[uint]models.Appointment
	holds        map[uint]models.HoldRequest
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		nextID:       s.nextID,
		doctors:      cloneMap(s.doctors),
		patients:     cloneMap(s.patients),
		templates:    cloneMap(s.templates),
		slots:        cloneMap(s.slots),
		appointments: cloneMap(s.appointments),
		holds:        cloneMap(s.holds),
	}
}

func (s *Store) restore(snap snapshot) {
	s.nextID = snap.nextID
	s.doctors = snap.doctors
	s.patients = snap.patients
	s.templates = snap.templates
	s.slots = snap.slots
	s.appointments = snap.appointments
	s.holds = snap.holds
}

// cloneMap copies rows; slice fields are shared but never mutated in place.
func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Compile-time checks
var (
	_ txn.Manager                 = (*Store)(nil)
	_ doctor.Repository           = (*Store)(nil)
	_ schedule.TemplateRepository = (*Store)(nil)
	_ schedule.SlotRepository     = (*Store)(nil)
	_ slot.Repository             = (*Store)(nil)
	_ appointment.Repository      = (*Store)(nil)
	_ hold.Repository             = (*Store)(nil)
)
