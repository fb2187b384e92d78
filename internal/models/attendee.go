package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendee struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name                string     `gorm:"column:name;not null;index"`
	Email               string     `gorm:"column:email;not null;index"`
	Phone               string     `gorm:"column:phone"`
	RSVPStatus          RSVPStatus `gorm:"column:rsvp_status;type:varchar(16);not null"`
	DietaryRestrictions string     `gorm:"column:dietary_restrictions"`
	EventID             uuid.UUID  `gorm:"column:event_id;type:uuid;not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type AttendeeFields struct {
	Name                string
	Email               string
	Phone               string
	RSVPStatus          RSVPStatus
	DietaryRestrictions string
	EventID             uuid.UUID
}

// NewAttendee validates f. The email is stored trimmed and lower-cased.
func NewAttendee(f AttendeeFields) (*Attendee, error) {
	name, err := requiredText("name", f.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(f.Email)
	if err != nil {
		return nil, err
	}
	status, err := rsvpStatus(f.RSVPStatus)
	if err != nil {
		return nil, err
	}
	if f.EventID == uuid.Nil {
		return nil, invalid("event_id", "is required")
	}

	return &Attendee{
		Name:                name,
		Email:               email,
		Phone:               optionalText(f.Phone),
		RSVPStatus:          status,
		DietaryRestrictions: optionalText(f.DietaryRestrictions),
		EventID:             f.EventID,
	}, nil
}

func (attendee *Attendee) BeforeCreate(tx *gorm.DB) (err error) {
	if attendee.ID == uuid.Nil {
		attendee.ID = uuid.New()
	}
	return
}

// Set validates and assigns a single field, named by its column.
func (attendee *Attendee) Set(field string, value any) error {
	if field == "rsvp_status" {
		var raw RSVPStatus
		switch v := value.(type) {
		case RSVPStatus:
			raw = v
		case string:
			raw = RSVPStatus(v)
		default:
			return invalid(field, "must be an RSVP status")
		}
		if raw == "" {
			return invalid(field, "must be one of Pending, Confirmed, Declined")
		}
		status, err := rsvpStatus(raw)
		if err != nil {
			return err
		}
		attendee.RSVPStatus = status
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return invalid(field, "must be a string")
	}
	switch field {
	case "name":
		name, err := requiredText(field, s)
		if err != nil {
			return err
		}
		attendee.Name = name
	case "email":
		email, err := normalizeEmail(s)
		if err != nil {
			return err
		}
		attendee.Email = email
	case "phone":
		attendee.Phone = optionalText(s)
	case "dietary_restrictions":
		attendee.DietaryRestrictions = optionalText(s)
	default:
		return invalid(field, "is not an updatable attendee field")
	}
	return nil
}
