package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/hold"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucHold "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/hold"
)

type HoldHandler struct {
	create *ucHold.CreateHold
	decide *ucHold.DecideHold
	lists  *ucHold.ListHolds
	purge  *ucHold.PurgeHistory
	log    *zap.Logger
}

func NewHoldHandler(d ucHold.Deps, log *zap.Logger) *HoldHandler {
	return &HoldHandler{
		create: ucHold.NewCreateHold(d),
		decide: ucHold.NewDecideHold(d),
		lists:  ucHold.NewListHolds(d),
		purge:  ucHold.NewPurgeHistory(d),
		log:    log,
	}
}

func (h *HoldHandler) Create(c *gin.Context) {
	var req dto.CreateHoldRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.create.Execute(c.Request.Context(), middleware.CallerFrom(c), ucHold.CreateHoldInput{
		TargetDate: req.TargetDate,
		Slots:      req.Slots,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *HoldHandler) Decide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DecideHoldRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.decide.Execute(c.Request.Context(), middleware.CallerFrom(c), ucHold.DecideHoldInput{
		ID:     id,
		Status: domain.Status(req.Status),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, r)
}

func listInput(c *gin.Context) (ucHold.ListHoldsInput, bool) {
	doctorID, ok := queryID(c, "doctor_id")
	if !ok {
		return ucHold.ListHoldsInput{}, false
	}
	return ucHold.ListHoldsInput{
		DoctorID:   doctorID,
		TargetDate: c.Query("target_date"),
		Page:       queryInt(c, "page"),
		PerPage:    queryInt(c, "per_page"),
	}, true
}

func (h *HoldHandler) Pending(c *gin.Context) {
	in, ok := listInput(c)
	if !ok {
		return
	}
	page, err := h.lists.Pending(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *HoldHandler) History(c *gin.Context) {
	in, ok := listInput(c)
	if !ok {
		return
	}
	page, err := h.lists.History(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *HoldHandler) Mine(c *gin.Context) {
	in, ok := listInput(c)
	if !ok {
		return
	}
	page, err := h.lists.Mine(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *HoldHandler) Counters(c *gin.Context) {
	counters, err := h.lists.Counters(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, counters)
}

func (h *HoldHandler) PurgeHistory(c *gin.Context) {
	res, err := h.purge.Execute(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
