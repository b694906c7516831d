package metrics

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// Outcome labels an error for the operations counter.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case httperr.IsSlotUnavailable(err):
		return "slot_unavailable"
	case httperr.IsNotFound(err):
		return "not_found"
	}
	if _, ok := httperr.AsValidation(err); ok {
		return "invalid"
	}
	if _, ok := httperr.AsConflict(err); ok {
		return "conflict"
	}
	return "error"
}
