package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/observability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucHold "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/hold"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

// Services are the side channels shared by every use case. All fields are
// optional.
type Services struct {
	Audit    *audit.Dispatcher
	Notifier *notify.Notifier
	Archiver ucHold.Archiver
	Obs      observability.Observer
	Clock    timezone.Clock
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, log *zap.Logger, repos Repositories, svc Services) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	clock := svc.Clock
	if clock == nil {
		clock = timezone.NewClock(cfg.ClinicTimezone)
	}

	// ======================================================
	// USE CASE DEPENDENCIES
	// ======================================================
	scheduleDeps := ucSchedule.Deps{
		Tx:        repos.Tx,
		Templates: repos.Templates,
		Slots:     repos.Slots,
		Doctors:   repos.Doctors,
		Audit:     svc.Audit,
		Obs:       svc.Obs,
	}

	appointmentDeps := ucAppointment.Deps{
		Tx:           repos.Tx,
		Appointments: repos.Appointments,
		Slots:        repos.SlotState,
		Schedule:     repos.Slots,
		Doctors:      repos.Doctors,
		Clock:        clock,
		Audit:        svc.Audit,
		Notifier:     svc.Notifier,
		Obs:          svc.Obs,
		MaxRangeDays: cfg.MaxAvailabilityDays,
	}

	holdDeps := ucHold.Deps{
		Tx:           repos.Tx,
		Holds:        repos.Holds,
		Slots:        repos.SlotState,
		Appointments: repos.Appointments,
		Clock:        clock,
		Audit:        svc.Audit,
		Notifier:     svc.Notifier,
		Obs:          svc.Obs,
		Archiver:     svc.Archiver,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	scheduleHandler := handlers.NewScheduleHandler(scheduleDeps, log)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentDeps, log)
	holdHandler := handlers.NewHoldHandler(holdDeps, log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if svc.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// Every role
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.GET("/doctors/:id/available-slots", appointmentHandler.AvailableSlots)
		api.GET("/doctors/:id/slots/check", appointmentHandler.CheckSlot)

		// ------------------------------
		// Doctor
		// ------------------------------
		doctor := api.Group("/doctor")
		doctor.Use(middleware.RequireRole(identity.RoleDoctor))
		{
			doctor.GET("/slots", scheduleHandler.DoctorSlots)
			doctor.GET("/schedule", scheduleHandler.CompactSchedule)

			doctor.POST("/hold-requests", holdHandler.Create)
			doctor.GET("/hold-requests", holdHandler.Mine)
			doctor.GET("/hold-requests/counters", holdHandler.Counters)
		}

		// ------------------------------
		// Admin
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(identity.RoleAdmin))
		{
			admin.POST("/templates", scheduleHandler.CreateTemplate)
			admin.GET("/templates", scheduleHandler.ListTemplates)
			admin.GET("/templates/count", scheduleHandler.CountTemplates)
			admin.GET("/templates/:id", scheduleHandler.GetTemplate)
			admin.PUT("/templates/:id", scheduleHandler.UpdateTemplate)
			admin.DELETE("/templates/:id", scheduleHandler.DeleteTemplate)

			admin.POST("/assignments", scheduleHandler.Assign)
			admin.POST("/assignments/check", scheduleHandler.CheckConflicts)
			admin.DELETE("/assignments", scheduleHandler.Unassign)

			admin.GET("/doctors/:id/slots", scheduleHandler.DoctorSlots)
			admin.GET("/doctors/:id/schedule", scheduleHandler.CompactSchedule)

			admin.GET("/hold-requests", holdHandler.Pending)
			admin.GET("/hold-requests/history", holdHandler.History)
			admin.DELETE("/hold-requests/history", holdHandler.PurgeHistory)
			admin.GET("/hold-requests/counters", holdHandler.Counters)
			admin.PATCH("/hold-requests/:id", holdHandler.Decide)
		}
	}
}
