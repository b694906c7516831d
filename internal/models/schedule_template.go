package models

import "time"

// ScheduleTemplate is a reusable weekly range. It is not tied to a doctor;
// assigning it expands it into DoctorSlot rows.
type ScheduleTemplate struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	// ISO weekdays, 1 = Monday ... 7 = Sunday.
	Weekdays []int `gorm:"serializer:json;type:text;not null" json:"weekdays"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
