package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    *ucAppointment.CreateAppointment
	edit      *ucAppointment.EditAppointment
	cancel    *ucAppointment.CancelAppointment
	get       *ucAppointment.GetAppointment
	list      *ucAppointment.ListAppointments
	available *ucAppointment.GetAvailableSlots
	check     *ucAppointment.CheckSlot
	log       *zap.Logger
}

func NewAppointmentHandler(d ucAppointment.Deps, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		create:    ucAppointment.NewCreateAppointment(d),
		edit:      ucAppointment.NewEditAppointment(d),
		cancel:    ucAppointment.NewCancelAppointment(d),
		get:       ucAppointment.NewGetAppointment(d),
		list:      ucAppointment.NewListAppointments(d),
		available: ucAppointment.NewGetAvailableSlots(d),
		check:     ucAppointment.NewCheckSlot(d),
		log:       log,
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.CallerFrom(c), ucAppointment.CreateAppointmentInput{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ap, err := h.get.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

// List accepts from/to (YYYY-MM-DD) and, for admins, doctor_id.
func (h *AppointmentHandler) List(c *gin.Context) {
	doctorID, ok := queryID(c, "doctor_id")
	if !ok {
		return
	}
	list, err := h.list.Execute(c.Request.Context(), middleware.CallerFrom(c), ucAppointment.ListAppointmentsInput{
		DoctorID: doctorID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.edit.Execute(c.Request.Context(), middleware.CallerFrom(c), ucAppointment.EditAppointmentInput{
		ID:        id,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Reason:    req.Reason,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cancel.Execute(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	slots, err := h.available.Execute(c.Request.Context(), ucAppointment.GetAvailableSlotsInput{
		DoctorID:  id,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *AppointmentHandler) CheckSlot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	available, err := h.check.Execute(c.Request.Context(), ucAppointment.CheckSlotInput{
		DoctorID: id,
		Date:     c.Query("date"),
		Time:     c.Query("time"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.SlotCheckResponse{Available: available})
}
