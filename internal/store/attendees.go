package store

import (
	"context"
	"errors"
	"strings"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAttendee validates the fields and attaches the attendee to an existing event.
func (s *Store) CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error) {
	attendee, err := models.NewAttendee(fields)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, "create attendee", func(tx *gorm.DB) error {
		if _, err := first[models.Event](tx, "event", attendee.EventID); err != nil {
			return err
		}
		return tx.Create(attendee).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("attendee created", "attendee_id", attendee.ID, "event_id", attendee.EventID)
	return attendee, nil
}

func (s *Store) GetAttendee(ctx context.Context, id uuid.UUID) (*models.Attendee, error) {
	attendee, err := first[models.Attendee](s.db.WithContext(ctx), "attendee", id)
	if err != nil {
		return nil, s.wrap("get attendee", err)
	}
	return attendee, nil
}

func (s *Store) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	var attendees []models.Attendee
	if err := s.db.WithContext(ctx).Order("name").Find(&attendees).Error; err != nil {
		return nil, s.wrap("list attendees", err)
	}
	return attendees, nil
}

func (s *Store) ListAttendeesByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Attendee, error) {
	var attendees []models.Attendee
	if err := s.db.WithContext(ctx).Scopes(byEvent(eventID)).Order("name").Find(&attendees).Error; err != nil {
		return nil, s.wrap("list attendees by event", err)
	}
	return attendees, nil
}

func (s *Store) FindAttendeesByName(ctx context.Context, term string) ([]models.Attendee, error) {
	var attendees []models.Attendee
	if err := s.db.WithContext(ctx).Scopes(nameContains(term)).Order("name").Find(&attendees).Error; err != nil {
		return nil, s.wrap("find attendees", err)
	}
	return attendees, nil
}

// FindAttendeeByEmail returns the first attendee registered with email.
func (s *Store) FindAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var attendee models.Attendee
	err := s.db.WithContext(ctx).Where("email = ?", normalized).Order("created_at").First(&attendee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "attendee", ID: normalized}
	}
	if err != nil {
		return nil, s.wrap("find attendee by email", err)
	}
	return &attendee, nil
}

func (s *Store) DeleteAttendee(ctx context.Context, id uuid.UUID) error {
	return s.transaction(ctx, "delete attendee", func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Attendee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Entity: "attendee", ID: id.String()}
		}
		return nil
	})
}

func (s *Store) UpdateAttendeeField(ctx context.Context, id uuid.UUID, field string, value any) (*models.Attendee, error) {
	var attendee *models.Attendee
	err := s.transaction(ctx, "update attendee", func(tx *gorm.DB) error {
		var err error
		attendee, err = first[models.Attendee](tx, "attendee", id)
		if err != nil {
			return err
		}
		if err := attendee.Set(field, value); err != nil {
			return err
		}
		return tx.Model(attendee).Select(field).Updates(attendee).Error
	})
	if err != nil {
		return nil, err
	}
	return attendee, nil
}

func (s *Store) UpdateRSVP(ctx context.Context, id uuid.UUID, status models.RSVPStatus) (*models.Attendee, error) {
	return s.UpdateAttendeeField(ctx, id, "rsvp_status", status)
}
