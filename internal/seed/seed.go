// Package seed loads sample events from YAML fixtures into the store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/farellandr/planner/internal/helpers"
	"github.com/farellandr/planner/internal/models"
	"github.com/farellandr/planner/internal/store"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleFixture []byte

type Fixture struct {
	Events []EventFixture `yaml:"events"`
}

type EventFixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Date        string            `yaml:"date"`
	Location    string            `yaml:"location"`
	Budget      string            `yaml:"budget"`
	Status      string            `yaml:"status"`
	Attendees   []AttendeeFixture `yaml:"attendees"`
	Activities  []ActivityFixture `yaml:"activities"`
}

type AttendeeFixture struct {
	Name                string `yaml:"name"`
	Email               string `yaml:"email"`
	Phone               string `yaml:"phone"`
	RSVPStatus          string `yaml:"rsvp_status"`
	DietaryRestrictions string `yaml:"dietary_restrictions"`
}

type ActivityFixture struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	StartTime       string `yaml:"start_time"`
	Duration        int    `yaml:"duration"`
	Cost            string `yaml:"cost"`
	MaxParticipants string `yaml:"max_participants"`
}

// Writer creates the rows of a fixture.
type Writer interface {
	CreateEvent(ctx context.Context, fields models.EventFields) (*models.Event, error)
	CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error)
	CreateActivity(ctx context.Context, fields models.ActivityFields) (*models.Activity, error)
}

// Result counts the rows Apply created.
type Result struct {
	Events     int
	Attendees  int
	Activities int
}

func Load(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Sample returns the built-in demo fixture.
func Sample() (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(sampleFixture, &f); err != nil {
		return nil, fmt.Errorf("decode sample fixture: %w", err)
	}
	return &f, nil
}

// Apply writes every event of the fixture with its attendees and activities
// in one transaction. On error nothing is written and the Result is zero.
func Apply(ctx context.Context, st *store.Store, f *Fixture) (Result, error) {
	var res Result
	err := st.Transaction(ctx, func(tx *store.Store) error {
		var err error
		res, err = write(ctx, tx, f)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// write stops at the first failing row.
func write(ctx context.Context, w Writer, f *Fixture) (Result, error) {
	var res Result
	for i, ef := range f.Events {
		fields, err := ef.fields()
		if err != nil {
			return res, fmt.Errorf("event %d: %w", i+1, err)
		}
		event, err := w.CreateEvent(ctx, fields)
		if err != nil {
			return res, fmt.Errorf("event %q: %w", ef.Name, err)
		}
		res.Events++

		for _, af := range ef.Attendees {
			if _, err := w.CreateAttendee(ctx, af.fields(event.ID)); err != nil {
				return res, fmt.Errorf("attendee %q: %w", af.Name, err)
			}
			res.Attendees++
		}

		for _, af := range ef.Activities {
			fields, err := af.fields(event.ID)
			if err != nil {
				return res, fmt.Errorf("activity %q: %w", af.Name, err)
			}
			if _, err := w.CreateActivity(ctx, fields); err != nil {
				return res, fmt.Errorf("activity %q: %w", af.Name, err)
			}
			res.Activities++
		}
	}
	return res, nil
}

func (ef EventFixture) fields() (models.EventFields, error) {
	date, err := helpers.ParseDateTime(ef.Date)
	if err != nil {
		return models.EventFields{}, err
	}
	budget, err := helpers.ParseMoney(ef.Budget)
	if err != nil {
		return models.EventFields{}, err
	}
	return models.EventFields{
		Name:        ef.Name,
		Description: ef.Description,
		Date:        date,
		Location:    ef.Location,
		Budget:      budget,
		Status:      models.EventStatus(ef.Status),
	}, nil
}

func (af AttendeeFixture) fields(eventID uuid.UUID) models.AttendeeFields {
	return models.AttendeeFields{
		Name:                af.Name,
		Email:               af.Email,
		Phone:               af.Phone,
		RSVPStatus:          models.RSVPStatus(af.RSVPStatus),
		DietaryRestrictions: af.DietaryRestrictions,
		EventID:             eventID,
	}
}

func (af ActivityFixture) fields(eventID uuid.UUID) (models.ActivityFields, error) {
	start, err := helpers.ParseClock(af.StartTime)
	if err != nil {
		return models.ActivityFields{}, err
	}
	cost, err := helpers.ParseMoney(af.Cost)
	if err != nil {
		return models.ActivityFields{}, err
	}
	limit, err := helpers.ParseOptionalInt(af.MaxParticipants)
	if err != nil {
		return models.ActivityFields{}, err
	}
	return models.ActivityFields{
		Name:            af.Name,
		Description:     af.Description,
		StartTime:       start,
		Duration:        af.Duration,
		Cost:            cost,
		MaxParticipants: limit,
		EventID:         eventID,
	}, nil
}
