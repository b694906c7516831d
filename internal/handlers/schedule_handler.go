package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	templates *ucSchedule.ManageTemplates
	assign    *ucSchedule.AssignTemplate
	check     *ucSchedule.CheckConflicts
	unassign  *ucSchedule.UnassignTemplate
	slots     *ucSchedule.ListDoctorSlots
	compact   *ucSchedule.CompactSchedule
	log       *zap.Logger
}

func NewScheduleHandler(d ucSchedule.Deps, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		templates: ucSchedule.NewManageTemplates(d),
		assign:    ucSchedule.NewAssignTemplate(d),
		check:     ucSchedule.NewCheckConflicts(d),
		unassign:  ucSchedule.NewUnassignTemplate(d),
		slots:     ucSchedule.NewListDoctorSlots(d),
		compact:   ucSchedule.NewCompactSchedule(d),
		log:       log,
	}
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *ScheduleHandler) CreateTemplate(c *gin.Context) {
	var in schedule.TemplateInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.templates.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *ScheduleHandler) ListTemplates(c *gin.Context) {
	list, err := h.templates.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ScheduleHandler) CountTemplates(c *gin.Context) {
	n, err := h.templates.Count(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.CountResponse{Count: n})
}

func (h *ScheduleHandler) GetTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *ScheduleHandler) UpdateTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in schedule.TemplateInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.templates.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *ScheduleHandler) DeleteTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// ASSIGNMENTS
// ======================================================

func (h *ScheduleHandler) Assign(c *gin.Context) {
	var req dto.AssignTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	caller := middleware.CallerFrom(c)
	slots, err := h.assign.Execute(c.Request.Context(), ucSchedule.AssignTemplateInput{
		TemplateID: req.TemplateID,
		DoctorID:   req.DoctorID,
		Date:       req.Date,
		ActorID:    caller.UserID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.Created(c, slots)
}

func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req dto.AssignTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	conflicts, err := h.check.Execute(c.Request.Context(), ucSchedule.AssignTemplateInput{
		TemplateID: req.TemplateID,
		DoctorID:   req.DoctorID,
		Date:       req.Date,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, conflicts)
}

func (h *ScheduleHandler) Unassign(c *gin.Context) {
	var req dto.AssignTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	caller := middleware.CallerFrom(c)
	n, err := h.unassign.Execute(c.Request.Context(), ucSchedule.UnassignTemplateInput{
		TemplateID: req.TemplateID,
		DoctorID:   req.DoctorID,
		ActorID:    caller.UserID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.UnassignTemplateResponse{Deleted: n})
}

// ======================================================
// DOCTOR SLOTS
// ======================================================

// DoctorSlots serves both /admin/doctors/:id/slots and /doctor/slots.
func (h *ScheduleHandler) DoctorSlots(c *gin.Context) {
	var doctorID uint
	if c.Param("id") != "" {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		doctorID = id
	}
	templateID, ok := queryID(c, "template_id")
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), middleware.CallerFrom(c), ucSchedule.ListDoctorSlotsInput{
		DoctorID:   doctorID,
		TemplateID: templateID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *ScheduleHandler) CompactSchedule(c *gin.Context) {
	var doctorID uint
	if c.Param("id") != "" {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		doctorID = id
	}

	days, err := h.compact.Execute(c.Request.Context(), middleware.CallerFrom(c), doctorID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.List(c, days)
}
