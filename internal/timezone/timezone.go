package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Bogota"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock reports "today" for the clinic. Use cases take one so tests can pin the date.
type Clock interface {
	Today() string
	Now() time.Time
}

type clinicClock struct {
	tz string
}

func NewClock(tz string) Clock {
	return clinicClock{tz: tz}
}

func (c clinicClock) Now() time.Time {
	return NowIn(c.tz)
}

func (c clinicClock) Today() string {
	return c.Now().Format("2006-01-02")
}

// Fixed is a Clock frozen at t.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

func (f Fixed) Today() string {
	return time.Time(f).Format("2006-01-02")
}
