package httperr

import "errors"

const CodeSlotUnavailable = "slot_unavailable"

// ErrSlotUnavailable is returned when the requested slot is missing, already
// booked, or lost to a concurrent booking.
var ErrSlotUnavailable error = BusinessError{Code: CodeSlotUnavailable}

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsSlotUnavailable(err error) bool {
	return IsBusiness(err, CodeSlotUnavailable)
}
