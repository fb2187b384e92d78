package store

import (
	"context"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Attendees", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("start_time") })
}

func markLoaded(events []models.Event) {
	for i := range events {
		events[i].MarkRelationsLoaded()
	}
}

func (s *Store) CreateEvent(ctx context.Context, fields models.EventFields) (*models.Event, error) {
	event, err := models.NewEvent(fields)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, "create event", func(tx *gorm.DB) error {
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("event created", "event_id", event.ID, "name", event.Name)
	return event, nil
}

// GetEvent loads an event with its attendees and activities.
func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := first[models.Event](withRelations(s.db.WithContext(ctx)), "event", id)
	if err != nil {
		return nil, s.wrap("get event", err)
	}
	event.MarkRelationsLoaded()
	return event, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := withRelations(s.db.WithContext(ctx)).Order("date").Find(&events).Error
	if err != nil {
		return nil, s.wrap("list events", err)
	}
	markLoaded(events)
	return events, nil
}

// FindEventsByName matches a case-insensitive substring of the event name.
func (s *Store) FindEventsByName(ctx context.Context, term string) ([]models.Event, error) {
	var events []models.Event
	err := withRelations(s.db.WithContext(ctx)).Scopes(nameContains(term)).Order("date").Find(&events).Error
	if err != nil {
		return nil, s.wrap("find events", err)
	}
	markLoaded(events)
	return events, nil
}

// DeleteEvent removes the event together with its attendees and activities.
func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	err := s.transaction(ctx, "delete event", func(tx *gorm.DB) error {
		if _, err := first[models.Event](tx, "event", id); err != nil {
			return err
		}
		if err := tx.Scopes(byEvent(id)).Delete(&models.Attendee{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(byEvent(id)).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Event{}).Error
	})
	if err != nil {
		return err
	}
	s.log.Debug("event deleted", "event_id", id)
	return nil
}

// UpdateEventField validates and persists a single column of an event and
// returns it reloaded with its attendees and activities.
func (s *Store) UpdateEventField(ctx context.Context, id uuid.UUID, field string, value any) (*models.Event, error) {
	var event *models.Event
	err := s.transaction(ctx, "update event", func(tx *gorm.DB) error {
		var err error
		event, err = first[models.Event](tx, "event", id)
		if err != nil {
			return err
		}
		if err := event.Set(field, value); err != nil {
			return err
		}
		if err := tx.Model(event).Select(field).Updates(event).Error; err != nil {
			return err
		}
		event, err = first[models.Event](withRelations(tx), "event", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	event.MarkRelationsLoaded()
	return event, nil
}

// CountConfirmedAttendees counts confirmed attendees without loading them.
func (s *Store) CountConfirmedAttendees(ctx context.Context, eventID uuid.UUID) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Attendee{}).
		Scopes(byEvent(eventID)).
		Where("rsvp_status = ?", models.RSVPConfirmed).
		Count(&n).Error
	if err != nil {
		return 0, s.wrap("count confirmed attendees", err)
	}
	return int(n), nil
}

// SumActivityCost totals activity costs without loading the activities;
// zero when none. The column is summed in Go: SQLite keeps decimals as REAL,
// and SUM there accumulates binary rounding error.
func (s *Store) SumActivityCost(ctx context.Context, eventID uuid.UUID) (decimal.Decimal, error) {
	var costs []decimal.Decimal
	err := s.db.WithContext(ctx).Model(&models.Activity{}).
		Scopes(byEvent(eventID)).
		Pluck("cost", &costs).Error
	if err != nil {
		return decimal.Zero, s.wrap("sum activity cost", err)
	}
	return decimal.Sum(decimal.Zero, costs...), nil
}
