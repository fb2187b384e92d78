package store

import (
	"context"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateActivity validates the fields and attaches the activity to an existing event.
func (s *Store) CreateActivity(ctx context.Context, fields models.ActivityFields) (*models.Activity, error) {
	activity, err := models.NewActivity(fields)
	if err != nil {
		return nil, err
	}
	err = s.transaction(ctx, "create activity", func(tx *gorm.DB) error {
		if _, err := first[models.Event](tx, "event", activity.EventID); err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("activity created", "activity_id", activity.ID, "event_id", activity.EventID)
	return activity, nil
}

func (s *Store) GetActivity(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	activity, err := first[models.Activity](s.db.WithContext(ctx), "activity", id)
	if err != nil {
		return nil, s.wrap("get activity", err)
	}
	return activity, nil
}

func (s *Store) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.WithContext(ctx).Order("start_time").Find(&activities).Error; err != nil {
		return nil, s.wrap("list activities", err)
	}
	return activities, nil
}

func (s *Store) ListActivitiesByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.WithContext(ctx).Scopes(byEvent(eventID)).Order("start_time").Find(&activities).Error; err != nil {
		return nil, s.wrap("list activities by event", err)
	}
	return activities, nil
}

func (s *Store) FindActivitiesByName(ctx context.Context, term string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.WithContext(ctx).Scopes(nameContains(term)).Order("start_time").Find(&activities).Error; err != nil {
		return nil, s.wrap("find activities", err)
	}
	return activities, nil
}

func (s *Store) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	return s.transaction(ctx, "delete activity", func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Activity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Entity: "activity", ID: id.String()}
		}
		return nil
	})
}

func (s *Store) UpdateActivityField(ctx context.Context, id uuid.UUID, field string, value any) (*models.Activity, error) {
	var activity *models.Activity
	err := s.transaction(ctx, "update activity", func(tx *gorm.DB) error {
		var err error
		activity, err = first[models.Activity](tx, "activity", id)
		if err != nil {
			return err
		}
		if err := activity.Set(field, value); err != nil {
			return err
		}
		return tx.Model(activity).Select(field).Updates(activity).Error
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}
