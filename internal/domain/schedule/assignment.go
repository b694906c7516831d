package schedule

import (
	"fmt"
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
)

// Assignment binds a template to a doctor. A non-nil Date pins the
// assignment to that single calendar day.
type Assignment struct {
	Template *models.ScheduleTemplate
	DoctorID uint
	Date     *string
}

type Range struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	TemplateID   uint   `json:"template_id"`
	TemplateName string `json:"template_name"`
}

type Conflict struct {
	Weekday   int   `json:"weekday"`
	Existing  Range `json:"existing"`
	Candidate Range `json:"candidate"`
}

// Weekdays returns the days the assignment expands on.
func (a Assignment) Weekdays() ([]int, error) {
	if a.Date == nil {
		return append([]int(nil), a.Template.Weekdays...), nil
	}

	wd, err := WeekdayOf(*a.Date)
	if err != nil {
		return nil, httperr.ErrField("date", "must be a date in YYYY-MM-DD format")
	}
	for _, d := range a.Template.Weekdays {
		if d == wd {
			return []int{wd}, nil
		}
	}
	return nil, httperr.ErrField("date", "does not fall on a weekday of the template")
}

func (a Assignment) bounds() (Clock, Clock, error) {
	start, err := ParseClock(a.Template.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("template %d: %w", a.Template.ID, err)
	}
	end, err := ParseClock(a.Template.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("template %d: %w", a.Template.ID, err)
	}
	if end <= start {
		return 0, 0, httperr.ErrField("end_time", "must be after start_time")
	}
	return start, end, nil
}

// Expand produces one available slot per weekday per 30 minute tick in
// [start, end). The last slot is cut at the template end.
func (a Assignment) Expand() ([]models.DoctorSlot, error) {
	weekdays, err := a.Weekdays()
	if err != nil {
		return nil, err
	}
	start, end, err := a.bounds()
	if err != nil {
		return nil, err
	}

	perDay := (int(end-start) + SlotMinutes - 1) / SlotMinutes
	slots := make([]models.DoctorSlot, 0, perDay*len(weekdays))

	for _, wd := range weekdays {
		for t := start; t < end; t += SlotMinutes {
			slotEnd := t + SlotMinutes
			if slotEnd > end {
				slotEnd = end
			}
			s := models.DoctorSlot{
				TemplateID: a.Template.ID,
				DoctorID:   a.DoctorID,
				Weekday:    wd,
				StartTime:  t.String(),
				EndTime:    slotEnd.String(),
				Status:     SlotAvailable,
			}
			if a.Date != nil {
				d := *a.Date
				s.SlotDate = &d
			}
			slots = append(slots, s)
		}
	}

	return slots, nil
}

// Conflicts checks every existing slot of the doctor against the candidate
// range and returns all overlaps. Slots pinned to another date never collide
// with a pinned candidate. names resolves template ids for the report.
func (a Assignment) Conflicts(existing []models.DoctorSlot, names map[uint]string) ([]Conflict, error) {
	weekdays, err := a.Weekdays()
	if err != nil {
		return nil, err
	}
	start, end, err := a.bounds()
	if err != nil {
		return nil, err
	}

	ordered := append([]models.DoctorSlot(nil), existing...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Weekday != ordered[j].Weekday {
			return ordered[i].Weekday < ordered[j].Weekday
		}
		return ordered[i].StartTime < ordered[j].StartTime
	})

	candidate := Range{
		Start:        a.Template.StartTime,
		End:          a.Template.EndTime,
		TemplateID:   a.Template.ID,
		TemplateName: a.Template.Name,
	}

	var conflicts []Conflict
	for _, wd := range weekdays {
		for _, s := range ordered {
			if s.DoctorID != a.DoctorID || s.Weekday != wd {
				continue
			}
			if a.Date != nil && s.SlotDate != nil && *s.SlotDate != *a.Date {
				continue
			}

			sStart, err := ParseClock(s.StartTime)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", s.ID, err)
			}
			sEnd, err := ParseClock(s.EndTime)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", s.ID, err)
			}
			if !Overlaps(start, end, sStart, sEnd) {
				continue
			}

			conflicts = append(conflicts, Conflict{
				Weekday: wd,
				Existing: Range{
					Start:        s.StartTime,
					End:          s.EndTime,
					TemplateID:   s.TemplateID,
					TemplateName: names[s.TemplateID],
				},
				Candidate: candidate,
			})
		}
	}

	return conflicts, nil
}
