package dto

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

type CreateHoldRequest struct {
	TargetDate string            `json:"target_date"`
	Slots      []models.HoldSlot `json:"slots"`
}

type DecideHoldRequest struct {
	Status string `json:"status"`
}
