package schedule

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ISOWeekday numbers days 1 (Monday) through 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekdayOf returns the ISO weekday of a YYYY-MM-DD date.
func WeekdayOf(date string) (int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return ISOWeekday(t), nil
}

func validWeekday(d int) bool {
	return d >= 1 && d <= 7
}
