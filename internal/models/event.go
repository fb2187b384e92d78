package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name        string          `gorm:"column:name;not null;index"`
	Description string          `gorm:"column:description"`
	Date        time.Time       `gorm:"column:date;not null"`
	Location    string          `gorm:"column:location;not null"`
	Budget      decimal.Decimal `gorm:"column:budget;type:decimal(12,2);not null"`
	Status      EventStatus     `gorm:"column:status;type:varchar(16);not null"`
	Attendees   []Attendee      `gorm:"constraint:OnDelete:CASCADE;"`
	Activities  []Activity      `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	relationsLoaded bool
}

// EventFields is the caller-supplied input for NewEvent.
type EventFields struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
	Budget      decimal.Decimal
	Status      EventStatus
}

// NewEvent validates f and returns an unsaved Event with empty collections.
func NewEvent(f EventFields) (*Event, error) {
	name, err := requiredText("name", f.Name)
	if err != nil {
		return nil, err
	}
	if err := requiredTime("date", f.Date); err != nil {
		return nil, err
	}
	location, err := requiredText("location", f.Location)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("budget", f.Budget); err != nil {
		return nil, err
	}
	status, err := eventStatus(f.Status)
	if err != nil {
		return nil, err
	}

	return &Event{
		Name:            name,
		Description:     optionalText(f.Description),
		Date:            f.Date,
		Location:        location,
		Budget:          f.Budget,
		Status:          status,
		Attendees:       []Attendee{},
		Activities:      []Activity{},
		relationsLoaded: true,
	}, nil
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// Set validates and assigns a single field, named by its column.
func (event *Event) Set(field string, value any) error {
	switch field {
	case "name", "location":
		s, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		trimmed, err := requiredText(field, s)
		if err != nil {
			return err
		}
		if field == "name" {
			event.Name = trimmed
		} else {
			event.Location = trimmed
		}
	case "description":
		s, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		event.Description = optionalText(s)
	case "date":
		t, ok := value.(time.Time)
		if !ok {
			return invalid(field, "must be a date-time")
		}
		if err := requiredTime(field, t); err != nil {
			return err
		}
		event.Date = t
	case "budget":
		d, ok := value.(decimal.Decimal)
		if !ok {
			return invalid(field, "must be a decimal amount")
		}
		if err := nonNegative(field, d); err != nil {
			return err
		}
		event.Budget = d
	case "status":
		var raw EventStatus
		switch v := value.(type) {
		case EventStatus:
			raw = v
		case string:
			raw = EventStatus(v)
		default:
			return invalid(field, "must be a status")
		}
		if raw == "" {
			return invalid(field, "must be one of Planning, Active, Completed, Cancelled")
		}
		status, err := eventStatus(raw)
		if err != nil {
			return err
		}
		event.Status = status
	default:
		return invalid(field, "is not an updatable event field")
	}
	return nil
}

// RelationsLoaded reports whether Attendees and Activities reflect the store.
func (event *Event) RelationsLoaded() bool {
	return event.relationsLoaded
}

// MarkRelationsLoaded is called by loaders after preloading both collections.
func (event *Event) MarkRelationsLoaded() {
	if event.Attendees == nil {
		event.Attendees = []Attendee{}
	}
	if event.Activities == nil {
		event.Activities = []Activity{}
	}
	event.relationsLoaded = true
}

// ConfirmedAttendeeCount counts attendees whose RSVP is Confirmed.
func (event *Event) ConfirmedAttendeeCount() int {
	n := 0
	for i := range event.Attendees {
		if event.Attendees[i].RSVPStatus == RSVPConfirmed {
			n++
		}
	}
	return n
}

// TotalActivityCost sums the cost of every activity of the event.
func (event *Event) TotalActivityCost() decimal.Decimal {
	total := decimal.Zero
	for i := range event.Activities {
		total = total.Add(event.Activities[i].Cost)
	}
	return total
}

// BudgetRemaining is the budget minus total activity cost. Negative means over budget.
func (event *Event) BudgetRemaining() decimal.Decimal {
	return event.Budget.Sub(event.TotalActivityCost())
}

func (event *Event) OverBudget() bool {
	return event.BudgetRemaining().IsNegative()
}
