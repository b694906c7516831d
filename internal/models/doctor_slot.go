package models

import "time"

type DoctorSlot struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TemplateID uint `gorm:"not null;index:idx_doctor_slots_assignment" json:"template_id"`
	DoctorID   uint `gorm:"not null;index:idx_doctor_slots_assignment;index:idx_doctor_slots_lookup" json:"doctor_id"`

	Weekday int `gorm:"not null;index:idx_doctor_slots_lookup" json:"weekday"`

	// Nil for recurring weekly slots.
	SlotDate *string `gorm:"size:10" json:"slot_date,omitempty"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
