// Package missions owns the per-day mission view, the add/complete write path,
// weekly routines and the week summary.
package missions

import (
	"time"

	"zerowaste/internal/calendar"
	"zerowaste/internal/models"
)

// MaxPerDay caps the explicit records a user may hold on one date.
const MaxPerDay = 3

type Source string

const (
	SourceExplicit Source = "explicit"
	SourceRoutine  Source = "routine"
)

// MissionRef is the catalog side of an entry.
type MissionRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Entry is one mission visible on a day. Routine entries have no record id
// and are never completed.
type Entry struct {
	ID         *int          `json:"id"`
	MissionID  int           `json:"mission_id"`
	Mission    MissionRef    `json:"mission"`
	Date       calendar.Date `json:"date"`
	SubMission string        `json:"sub_mission"`
	Completed  bool          `json:"completed"`
	Source     Source        `json:"source"`
	RoutineID  *int          `json:"routine_id,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
}

type key struct {
	missionID  int
	subMission string
}

// routineVisible reports whether r shows on day: from its display start to the
// end of its week.
func routineVisible(r models.WeeklyRoutine, day calendar.Date) bool {
	return day.Between(r.StartDate, calendar.Sunday(r.WeekStartDate))
}

// MergeDay combines the explicit records of day with the routines of its
// week. Explicit entries come first in the order given; a routine whose
// (mission, sub-mission) matches an explicit record is dropped.
func MergeDay(day calendar.Date, explicit []models.DayMission, routines []models.WeeklyRoutine) []Entry {
	out := make([]Entry, 0, len(explicit)+len(routines))
	seen := make(map[key]bool, len(explicit)+len(routines))

	for _, m := range explicit {
		id, created := m.ID, m.CreatedAt
		e := Entry{
			ID:         &id,
			MissionID:  m.MissionID,
			Date:       day,
			SubMission: m.SubMission,
			Completed:  m.Completed,
			Source:     SourceExplicit,
		}
		if !created.IsZero() {
			e.CreatedAt = &created
		}
		out = append(out, e)
		seen[key{m.MissionID, m.SubMission}] = true
	}

	for _, r := range routines {
		if !routineVisible(r, day) {
			continue
		}
		k := key{r.MissionID, r.SubMission}
		if seen[k] {
			continue
		}
		seen[k] = true
		rid := r.ID
		out = append(out, Entry{
			MissionID:  r.MissionID,
			Date:       day,
			SubMission: r.SubMission,
			Source:     SourceRoutine,
			RoutineID:  &rid,
		})
	}
	return out
}

// DaySummary is the completion state of one day of a week.
type DaySummary struct {
	Date           calendar.Date `json:"date"`
	Total          int           `json:"total_missions"`
	Completed      int           `json:"completed_missions"`
	CompletionRate float64       `json:"completion_rate"`
	Perfect        bool          `json:"is_day_perfectly_complete"`
}

// SummarizeWeek returns the seven days of ref's week, Monday first. records
// may hold any dates; those outside the week are ignored.
func SummarizeWeek(ref calendar.Date, records []models.DayMission, routines []models.WeeklyRoutine) []DaySummary {
	days := calendar.WeekDays(ref)
	byDate := make(map[string][]models.DayMission, len(days))
	for _, m := range records {
		byDate[m.Date.String()] = append(byDate[m.Date.String()], m)
	}

	out := make([]DaySummary, len(days))
	for i, day := range days {
		s := DaySummary{Date: day}
		for _, e := range MergeDay(day, byDate[day.String()], routines) {
			s.Total++
			if e.Completed {
				s.Completed++
			}
		}
		if s.Total > 0 {
			s.CompletionRate = float64(s.Completed) / float64(s.Total)
			s.Perfect = s.Completed == s.Total
		}
		out[i] = s
	}
	return out
}
