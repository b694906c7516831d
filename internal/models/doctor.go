package models

import "time"

// Doctor is the bookable side of a slot. UserID points at the external
// account; the account never points back.
type Doctor struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Workplace string `gorm:"size:255" json:"workplace"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
