package models

import "time"

// HoldSlot is one requested block. Time is a range, "HH:MM-HH:MM".
type HoldSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type HoldRequest struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"not null;index" json:"doctor_id"`

	TargetDate string     `gorm:"size:10;not null" json:"target_date"`
	Slots      []HoldSlot `gorm:"serializer:json;type:text;not null" json:"slots"`

	Status    string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminID   *uint      `json:"admin_id"`
	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
