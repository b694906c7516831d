package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type TimeSlot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// OpenSlots walks every date in [from, to] and lists the slots still free on
// it. A slot pinned to a date hides a recurring slot with the same start on
// that date. taken holds "date time" keys of existing appointments.
func OpenSlots(from, to time.Time, slots []models.DoctorSlot, taken map[string]bool) []TimeSlot {
	recurring := map[int][]models.DoctorSlot{}
	pinned := map[string][]models.DoctorSlot{}
	for _, s := range slots {
		if s.SlotDate != nil {
			pinned[*s.SlotDate] = append(pinned[*s.SlotDate], s)
			continue
		}
		recurring[s.Weekday] = append(recurring[s.Weekday], s)
	}

	var out []TimeSlot
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(schedule.DateLayout)

		day := pinned[date]
		shadowed := make(map[string]bool, len(day))
		for _, s := range day {
			shadowed[s.StartTime] = true
		}
		for _, s := range recurring[schedule.ISOWeekday(d)] {
			if !shadowed[s.StartTime] {
				day = append(day, s)
			}
		}

		sort.Slice(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })
		for _, s := range day {
			if s.Status != schedule.SlotAvailable || taken[TakenKey(date, s.StartTime)] {
				continue
			}
			out = append(out, TimeSlot{Date: date, Start: s.StartTime, End: s.EndTime})
		}
	}
	return out
}

func TakenKey(date, at string) string {
	return date + " " + at
}

