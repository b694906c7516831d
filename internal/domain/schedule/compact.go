package schedule

import (
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CompactDay struct {
	Weekday int      `json:"weekday"`
	Ranges  []string `json:"ranges"`
}

// Compact folds a doctor's recurring slots into contiguous "HH:MM - HH:MM"
// ranges per weekday. Date-pinned slots are left out of the weekly view.
func Compact(slots []models.DoctorSlot) []CompactDay {
	byDay := map[int][]models.DoctorSlot{}
	for _, s := range slots {
		if s.SlotDate != nil {
			continue
		}
		byDay[s.Weekday] = append(byDay[s.Weekday], s)
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	out := make([]CompactDay, 0, len(days))
	for _, d := range days {
		list := byDay[d]
		sort.Slice(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })

		var ranges []string
		start, end := list[0].StartTime, list[0].EndTime
		for _, s := range list[1:] {
			if s.StartTime <= end {
				if s.EndTime > end {
					end = s.EndTime
				}
				continue
			}
			ranges = append(ranges, start+" - "+end)
			start, end = s.StartTime, s.EndTime
		}
		ranges = append(ranges, start+" - "+end)

		out = append(out, CompactDay{Weekday: d, Ranges: ranges})
	}
	return out
}
