package routes

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/txn"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
)

// Repositories is the storage the use cases run on.
type Repositories struct {
	Tx           txn.Manager
	Templates    schedule.TemplateRepository
	Slots        schedule.SlotRepository
	SlotState    slot.Repository
	Doctors      doctor.Repository
	Appointments appointment.Repository
	Holds        hold.Repository
}

func GormRepositories(db *gorm.DB) Repositories {
	sched := infraRepo.NewScheduleGormRepository(db)
	return Repositories{
		Tx:           infraRepo.NewGormTransactor(db),
		Templates:    sched,
		Slots:        sched,
		SlotState:    sched,
		Doctors:      infraRepo.NewDoctorGormRepository(db),
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Holds:        infraRepo.NewHoldGormRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Tx:           s,
		Templates:    s,
		Slots:        s,
		SlotState:    s,
		Doctors:      s,
		Appointments: s,
		Holds:        s,
	}
}
