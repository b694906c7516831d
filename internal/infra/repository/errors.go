package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// notFound turns gorm.ErrRecordNotFound into a NotFound for resource.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(resource)
	}
	return err
}

// slotTaken turns a unique violation on appointments into ErrSlotUnavailable.
func slotTaken(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrSlotUnavailable
	}
	return err
}
