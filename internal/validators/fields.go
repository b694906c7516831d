package validators

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Fields collects field-level messages. The first message per field wins.
type Fields map[string]string

func (f Fields) Add(field, message string) {
	if _, ok := f[field]; ok {
		return
	}
	f[field] = message
}

// Err returns a httperr.ValidationError, or nil when nothing was added.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return httperr.ErrValidation(f)
}

func (f Fields) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		f.Add(field, "is required")
		return false
	}
	return true
}

func (f Fields) MaxLen(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		f.Add(field, "is too long")
		return false
	}
	return true
}

// Date checks a YYYY-MM-DD value.
func (f Fields) Date(field, value string) bool {
	if !f.Required(field, value) {
		return false
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		f.Add(field, "must be a date in YYYY-MM-DD format")
		return false
	}
	return true
}

// NotBefore checks value >= min; both are YYYY-MM-DD so string order is date order.
func (f Fields) NotBefore(field, value, min string) bool {
	if value < min {
		f.Add(field, "must be today or later")
		return false
	}
	return true
}

// Clock checks an HH:MM value in 00:00..23:59.
func (f Fields) Clock(field, value string) bool {
	if !f.Required(field, value) {
		return false
	}
	if !IsClock(value) {
		f.Add(field, "must be a time in HH:MM format")
		return false
	}
	return true
}

func IsClock(value string) bool {
	if len(value) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, value)
	return err == nil
}

func IsDate(value string) bool {
	if len(value) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
