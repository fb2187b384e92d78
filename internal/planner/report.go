package planner

import (
	"sort"
	"time"

	"github.com/farellandr/planner/internal/models"
	"github.com/shopspring/decimal"
)

type RSVPBreakdown struct {
	Total     int
	Confirmed int
	Pending   int
	Declined  int
}

func CountRSVP(attendees []models.Attendee) RSVPBreakdown {
	b := RSVPBreakdown{Total: len(attendees)}
	for _, a := range attendees {
		switch a.RSVPStatus {
		case models.RSVPConfirmed:
			b.Confirmed++
		case models.RSVPPending:
			b.Pending++
		case models.RSVPDeclined:
			b.Declined++
		}
	}
	return b
}

type DietaryCount struct {
	Restriction string
	Count       int
}

// DietaryNeeds counts restrictions of confirmed attendees, in order of first appearance.
func DietaryNeeds(attendees []models.Attendee) []DietaryCount {
	var out []DietaryCount
	index := make(map[string]int)
	for _, a := range attendees {
		if a.RSVPStatus != models.RSVPConfirmed || a.DietaryRestrictions == "" {
			continue
		}
		if i, ok := index[a.DietaryRestrictions]; ok {
			out[i].Count++
			continue
		}
		index[a.DietaryRestrictions] = len(out)
		out = append(out, DietaryCount{Restriction: a.DietaryRestrictions, Count: 1})
	}
	return out
}

// EventReport is everything the detailed report shows for one event.
type EventReport struct {
	Event     *models.Event
	Budget    decimal.Decimal
	TotalCost decimal.Decimal
	Remaining decimal.Decimal
	RSVP      RSVPBreakdown
	Dietary   []DietaryCount
	Schedule  []Slot
	Conflicts []Conflict
}

func (r *EventReport) OverBudget() bool {
	return r.Remaining.IsNegative()
}

// BuildReport expects event to have its relations loaded.
func BuildReport(event *models.Event) *EventReport {
	schedule := Schedule(event.Activities)
	ordered := make([]models.Activity, len(schedule))
	for i, slot := range schedule {
		ordered[i] = slot.Activity
	}
	return &EventReport{
		Event:     event,
		Budget:    event.Budget,
		TotalCost: event.TotalActivityCost(),
		Remaining: event.BudgetRemaining(),
		RSVP:      CountRSVP(event.Attendees),
		Dietary:   DietaryNeeds(event.Attendees),
		Schedule:  schedule,
		Conflicts: FindAllConflicts(ordered),
	}
}

const upcomingLimit = 5

type StatusCount struct {
	Status models.EventStatus
	Count  int
}

type Upcoming struct {
	Event     models.Event
	DaysAway  int
	Confirmed int
}

type Overage struct {
	Event  models.Event
	Amount decimal.Decimal
}

type Dashboard struct {
	TotalEvents     int
	TotalAttendees  int
	TotalActivities int
	TotalBudget     decimal.Decimal
	ByStatus        []StatusCount
	Upcoming        []Upcoming
	OverBudget      []Overage
}

// BuildDashboard summarises loaded events as of now.
func BuildDashboard(events []models.Event, now time.Time) Dashboard {
	d := Dashboard{TotalEvents: len(events), TotalBudget: decimal.Zero}
	perStatus := make(map[models.EventStatus]int)
	var upcoming []models.Event

	for _, e := range events {
		d.TotalAttendees += len(e.Attendees)
		d.TotalActivities += len(e.Activities)
		d.TotalBudget = d.TotalBudget.Add(e.Budget)
		perStatus[e.Status]++
		if e.Date.After(now) {
			upcoming = append(upcoming, e)
		}
		if e.OverBudget() {
			d.OverBudget = append(d.OverBudget, Overage{Event: e, Amount: e.BudgetRemaining().Neg()})
		}
	}

	for _, status := range models.EventStatuses {
		if n := perStatus[status]; n > 0 {
			d.ByStatus = append(d.ByStatus, StatusCount{Status: status, Count: n})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	for _, e := range upcoming {
		d.Upcoming = append(d.Upcoming, Upcoming{
			Event:     e,
			DaysAway:  int(e.Date.Sub(now).Hours() / 24),
			Confirmed: e.ConfirmedAttendeeCount(),
		})
	}
	return d
}

// Stats are the database-wide totals shown by the stats command.
type Stats struct {
	Events            int
	Attendees         int
	Activities        int
	TotalBudget       decimal.Decimal
	TotalActivityCost decimal.Decimal
}

func BuildStats(events []models.Event) Stats {
	s := Stats{Events: len(events), TotalBudget: decimal.Zero, TotalActivityCost: decimal.Zero}
	for i := range events {
		s.Attendees += len(events[i].Attendees)
		s.Activities += len(events[i].Activities)
		s.TotalBudget = s.TotalBudget.Add(events[i].Budget)
		s.TotalActivityCost = s.TotalActivityCost.Add(events[i].TotalActivityCost())
	}
	return s
}
