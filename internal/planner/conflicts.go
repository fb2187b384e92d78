// Package planner derives schedules, conflicts and budget reports from
// loaded events.
package planner

import (
	"sort"

	"github.com/farellandr/planner/internal/models"
)

// Conflict is an unordered pair of overlapping activities.
type Conflict struct {
	A models.Activity
	B models.Activity
}

func ConflictsWith(a, b *models.Activity) bool {
	return a.ConflictsWith(b)
}

// FindAllConflicts checks every pair (i < j) of activities. Pairs are
// returned in input order.
func FindAllConflicts(activities []models.Activity) []Conflict {
	var out []Conflict
	for i := 0; i < len(activities); i++ {
		for j := i + 1; j < len(activities); j++ {
			if activities[i].ConflictsWith(&activities[j]) {
				out = append(out, Conflict{A: activities[i], B: activities[j]})
			}
		}
	}
	return out
}

// ConflictsFor returns the activities in existing that overlap candidate.
func ConflictsFor(candidate *models.Activity, existing []models.Activity) []models.Activity {
	var out []models.Activity
	for i := range existing {
		if candidate.ConflictsWith(&existing[i]) {
			out = append(out, existing[i])
		}
	}
	return out
}

// Slot is an activity placed on the event day.
type Slot struct {
	Activity    models.Activity
	Start       models.Clock
	End         models.Clock
	EndsNextDay bool
}

// Schedule orders activities by start time, keeping input order for ties.
func Schedule(activities []models.Activity) []Slot {
	slots := make([]Slot, 0, len(activities))
	for _, a := range activities {
		slots = append(slots, Slot{
			Activity:    a,
			Start:       a.StartTime,
			End:         a.EndTime(),
			EndsNextDay: a.EndsNextDay(),
		})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}
