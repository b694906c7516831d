package schedule

import (
	"fmt"
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type TemplateInput struct {
	Name      string `json:"name"`
	Weekdays  []int  `json:"weekdays"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate rejects empty or out-of-range weekday sets and ranges where end <= start.
func (in TemplateInput) Validate() error {
	f := validators.Fields{}

	if f.Required("name", in.Name) {
		f.MaxLen("name", in.Name, 100)
	}

	if len(in.Weekdays) == 0 {
		f.Add("weekdays", "must contain at least one weekday")
	}
	seen := make(map[int]bool, len(in.Weekdays))
	for _, d := range in.Weekdays {
		if !validWeekday(d) {
			f.Add("weekdays", fmt.Sprintf("weekday %d is outside 1..7", d))
			continue
		}
		if seen[d] {
			f.Add("weekdays", fmt.Sprintf("weekday %d is repeated", d))
		}
		seen[d] = true
	}

	start, startErr := ParseClock(in.StartTime)
	if startErr != nil || start == EndOfDay {
		f.Add("start_time", "must be a time in HH:MM format")
	}
	end, endErr := ParseClock(in.EndTime)
	if endErr != nil {
		f.Add("end_time", "must be a time in HH:MM format")
	}
	if startErr == nil && endErr == nil && end <= start {
		f.Add("end_time", "must be after start_time")
	}

	return f.Err()
}

func (in TemplateInput) Apply(t *models.ScheduleTemplate) {
	t.Name = in.Name
	t.Weekdays = sortedDays(in.Weekdays)
	t.StartTime = in.StartTime
	t.EndTime = in.EndTime
}

// SameRange reports whether applying in would leave the expanded slots unchanged.
func (in TemplateInput) SameRange(t *models.ScheduleTemplate) bool {
	if in.StartTime != t.StartTime || in.EndTime != t.EndTime {
		return false
	}
	want, have := sortedDays(in.Weekdays), sortedDays(t.Weekdays)
	if len(want) != len(have) {
		return false
	}
	for i := range want {
		if want[i] != have[i] {
			return false
		}
	}
	return true
}

func sortedDays(days []int) []int {
	out := append([]int(nil), days...)
	sort.Ints(out)
	return out
}
