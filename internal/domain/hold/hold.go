package hold

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ===============================
// Hold Request Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Decide moves a pending request to approved or rejected. Decided requests
// are reported as missing, like any request outside the pending queue.
func Decide(r *models.HoldRequest, to Status) error {
	if Status(r.Status) != StatusPending {
		return httperr.ErrNotFound("hold_request")
	}
	if to != StatusApproved && to != StatusRejected {
		return httperr.ErrField("status", "must be approved or rejected")
	}
	r.Status = string(to)
	return nil
}

// ===============================
// Slot ranges
// ===============================

// ParseRange splits "HH:MM-HH:MM" into start and end.
func ParseRange(r string) (start, end string, err error) {
	parts := strings.Split(r, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid time range %q", r)
	}
	start, end = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	s, err := schedule.ParseClock(start)
	if err != nil || s == schedule.EndOfDay {
		return "", "", fmt.Errorf("invalid time range %q", r)
	}
	e, err := schedule.ParseClock(end)
	if err != nil || e <= s {
		return "", "", fmt.Errorf("invalid time range %q", r)
	}
	return start, end, nil
}

// ValidateSlots checks every entry of a hold request. Field keys are
// "slots.<i>.date" / "slots.<i>.time".
func ValidateSlots(targetDate string, slots []models.HoldSlot, today string) error {
	f := validators.Fields{}
	if f.Date("target_date", targetDate) {
		f.NotBefore("target_date", targetDate, today)
	}

	if len(slots) == 0 {
		f.Add("slots", "must contain at least one slot")
	}
	for i, s := range slots {
		key := fmt.Sprintf("slots.%d", i)
		if f.Date(key+".date", s.Date) {
			f.NotBefore(key+".date", s.Date, today)
		}
		if _, _, err := ParseRange(s.Time); err != nil {
			f.Add(key+".time", "must be a range in HH:MM-HH:MM format")
		}
	}
	return f.Err()
}
