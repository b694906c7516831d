package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const maxTextLen = 255

// BookingFields checks the date/time/location/reason shared by create and
// edit. today is the clinic's current date.
func BookingFields(date, at, location, reason, today string) validators.Fields {
	f := validators.Fields{}
	if f.Date("date", date) {
		f.NotBefore("date", date, today)
	}
	f.Clock("time", at)
	if f.Required("location", location) {
		f.MaxLen("location", location, maxTextLen)
	}
	f.MaxLen("reason", reason, maxTextLen)
	return f
}
