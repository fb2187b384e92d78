package planner

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the subset of the record store the planner reads from.
type Store interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	FindEventsByName(ctx context.Context, term string) ([]models.Event, error)
	FindAttendeesByName(ctx context.Context, term string) ([]models.Attendee, error)
	ListActivitiesByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Activity, error)
	CreateActivity(ctx context.Context, fields models.ActivityFields) (*models.Activity, error)
	CountConfirmedAttendees(ctx context.Context, eventID uuid.UUID) (int, error)
	SumActivityCost(ctx context.Context, eventID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// Totals are the aggregate figures of a single event.
type Totals struct {
	ConfirmedAttendees int
	TotalActivityCost  decimal.Decimal
	BudgetRemaining    decimal.Decimal
}

// Totals computes in memory when the event's collections are loaded and
// falls back to aggregate queries otherwise.
func (s *Service) Totals(ctx context.Context, event *models.Event) (Totals, error) {
	if event.RelationsLoaded() {
		return Totals{
			ConfirmedAttendees: event.ConfirmedAttendeeCount(),
			TotalActivityCost:  event.TotalActivityCost(),
			BudgetRemaining:    event.BudgetRemaining(),
		}, nil
	}

	s.log.Debug("event relations not loaded, querying aggregates", "event_id", event.ID)
	confirmed, err := s.store.CountConfirmedAttendees(ctx, event.ID)
	if err != nil {
		return Totals{}, err
	}
	cost, err := s.store.SumActivityCost(ctx, event.ID)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		ConfirmedAttendees: confirmed,
		TotalActivityCost:  cost,
		BudgetRemaining:    event.Budget.Sub(cost),
	}, nil
}

// CheckActivity validates fields and reports which scheduled activities of
// the same event it would overlap. Nothing is written.
func (s *Service) CheckActivity(ctx context.Context, fields models.ActivityFields) ([]models.Activity, error) {
	candidate, err := models.NewActivity(fields)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.ListActivitiesByEvent(ctx, fields.EventID)
	if err != nil {
		return nil, err
	}
	return ConflictsFor(candidate, existing), nil
}

// AddActivity creates the activity and returns the existing activities it
// overlaps. Overlaps are reported, not rejected.
func (s *Service) AddActivity(ctx context.Context, fields models.ActivityFields) (*models.Activity, []models.Activity, error) {
	conflicts, err := s.CheckActivity(ctx, fields)
	if err != nil {
		return nil, nil, err
	}
	activity, err := s.store.CreateActivity(ctx, fields)
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 {
		s.log.Info("activity overlaps existing schedule", "activity_id", activity.ID, "conflicts", len(conflicts))
	}
	return activity, conflicts, nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(events, s.now()), nil
}

func searchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", &models.ValidationError{Kind: models.InvalidField, Field: "term", Reason: "must be a non-empty string"}
	}
	return term, nil
}

// Search finds events whose name contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string) ([]models.Event, error) {
	term, err := searchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.store.FindEventsByName(ctx, term)
}

// SearchAttendees finds attendees of any event whose name contains term.
func (s *Service) SearchAttendees(ctx context.Context, term string) ([]models.Attendee, error) {
	term, err := searchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.store.FindAttendeesByName(ctx, term)
}

func (s *Service) Report(ctx context.Context, eventID uuid.UUID) (*EventReport, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return BuildReport(event), nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return Stats{}, err
	}
	return BuildStats(events), nil
}
