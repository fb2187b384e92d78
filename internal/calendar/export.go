// Package calendar exports an event and its activity schedule as iCalendar.
package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/farellandr/planner/internal/helpers"
	"github.com/farellandr/planner/internal/models"
	"github.com/farellandr/planner/internal/planner"
)

const productID = "-//farellandr//planner//EN"

// Build returns a calendar holding one VEVENT for the event itself and one
// per activity, placed on the event's date. stamp is used for DTSTAMP.
func Build(event *models.Event, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	root := cal.AddEvent(event.ID.String())
	root.SetDtStampTime(stamp)
	root.SetStartAt(event.Date)
	root.SetSummary(event.Name)
	root.SetLocation(event.Location)
	if event.Description != "" {
		root.SetDescription(event.Description)
	}
	root.SetStatus(objectStatus(event.Status))

	for _, slot := range planner.Schedule(event.Activities) {
		a := slot.Activity
		start := slot.Start.On(event.Date)

		ve := cal.AddEvent(a.ID.String())
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(time.Duration(a.Duration) * time.Minute))
		ve.SetSummary(a.Name)
		ve.SetLocation(event.Location)
		ve.SetDescription(activityDescription(a))
	}
	return cal
}

// WriteFile serialises the calendar for event to path.
func WriteFile(path string, event *models.Event, stamp time.Time) error {
	var buf bytes.Buffer
	if err := Build(event, stamp).SerializeTo(&buf); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	if err := helpers.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

func objectStatus(s models.EventStatus) ics.ObjectStatus {
	switch s {
	case models.StatusCancelled:
		return ics.ObjectStatusCancelled
	case models.StatusPlanning:
		return ics.ObjectStatusTentative
	default:
		return ics.ObjectStatusConfirmed
	}
}

func activityDescription(a models.Activity) string {
	desc := a.Description
	if a.Cost.IsPositive() {
		if desc != "" {
			desc += "\n"
		}
		desc += "Cost: " + helpers.FormatMoney(a.Cost)
	}
	if a.MaxParticipants != nil {
		if desc != "" {
			desc += "\n"
		}
		desc += fmt.Sprintf("Max participants: %d", *a.MaxParticipants)
	}
	return desc
}
