package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Activity struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name            string          `gorm:"column:name;not null;index"`
	Description     string          `gorm:"column:description"`
	StartTime       Clock           `gorm:"column:start_time;type:varchar(8);not null"`
	Duration        int             `gorm:"column:duration;not null"`
	Cost            decimal.Decimal `gorm:"column:cost;type:decimal(12,2);not null"`
	MaxParticipants *int            `gorm:"column:max_participants"`
	EventID         uuid.UUID       `gorm:"column:event_id;type:uuid;not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ActivityFields struct {
	Name            string
	Description     string
	StartTime       Clock
	Duration        int
	Cost            decimal.Decimal
	MaxParticipants *int
	EventID         uuid.UUID
}

// NewActivity validates f. A nil MaxParticipants means no cap.
func NewActivity(f ActivityFields) (*Activity, error) {
	name, err := requiredText("name", f.Name)
	if err != nil {
		return nil, err
	}
	if err := positiveMinutes("duration", f.Duration); err != nil {
		return nil, err
	}
	if err := nonNegative("cost", f.Cost); err != nil {
		return nil, err
	}
	if err := optionalPositive("max_participants", f.MaxParticipants); err != nil {
		return nil, err
	}
	if f.EventID == uuid.Nil {
		return nil, invalid("event_id", "is required")
	}

	var limit *int
	if f.MaxParticipants != nil {
		n := *f.MaxParticipants
		limit = &n
	}
	return &Activity{
		Name:            name,
		Description:     optionalText(f.Description),
		StartTime:       f.StartTime,
		Duration:        f.Duration,
		Cost:            f.Cost,
		MaxParticipants: limit,
		EventID:         f.EventID,
	}, nil
}

func (activity *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	return
}

// Set validates and assigns a single field, named by its column.
func (activity *Activity) Set(field string, value any) error {
	switch field {
	case "name", "description":
		s, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		if field == "description" {
			activity.Description = optionalText(s)
			return nil
		}
		name, err := requiredText(field, s)
		if err != nil {
			return err
		}
		activity.Name = name
	case "start_time":
		c, ok := value.(Clock)
		if !ok {
			return invalid(field, "must be a time of day")
		}
		activity.StartTime = c
	case "duration":
		n, ok := value.(int)
		if !ok {
			return invalid(field, "must be an integer")
		}
		if err := positiveMinutes(field, n); err != nil {
			return err
		}
		activity.Duration = n
	case "cost":
		d, ok := value.(decimal.Decimal)
		if !ok {
			return invalid(field, "must be a decimal amount")
		}
		if err := nonNegative(field, d); err != nil {
			return err
		}
		activity.Cost = d
	case "max_participants":
		var limit *int
		switch v := value.(type) {
		case nil:
		case int:
			limit = &v
		case *int:
			if v != nil {
				n := *v
				limit = &n
			}
		default:
			return invalid(field, "must be an integer or empty")
		}
		if err := optionalPositive(field, limit); err != nil {
			return err
		}
		activity.MaxParticipants = limit
	default:
		return invalid(field, "is not an updatable activity field")
	}
	return nil
}

// startMinute and endMinute place the activity on the event day's minute
// timeline. endMinute may exceed 24h for activities running past midnight.
func (activity *Activity) startMinute() int { return activity.StartTime.Minutes() }
func (activity *Activity) endMinute() int   { return activity.StartTime.Minutes() + activity.Duration }

// EndTime is StartTime plus Duration, wrapped to a time of day.
func (activity *Activity) EndTime() Clock {
	return activity.StartTime.Add(activity.Duration)
}

// EndsNextDay reports whether the activity runs past midnight.
func (activity *Activity) EndsNextDay() bool {
	return activity.endMinute() > minutesPerDay
}

// ConflictsWith reports whether the half-open intervals [start, end) of the
// two activities intersect. There is no identity guard.
func (activity *Activity) ConflictsWith(other *Activity) bool {
	if other == nil {
		return false
	}
	return !(activity.endMinute() <= other.startMinute() || other.endMinute() <= activity.startMinute())
}
