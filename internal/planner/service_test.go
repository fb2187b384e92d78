package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/farellandr/planner/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	events     []models.Event
	activities []models.Activity
	created    []models.ActivityFields

	confirmed    int
	cost         decimal.Decimal
	aggregateHit int
	searchTerm   string
}

func (f *fakeStore) GetEvent(_ context.Context, id uuid.UUID) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, &models.NotFoundError{Entity: "event", ID: id.String()}
}

func (f *fakeStore) ListEvents(context.Context) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeStore) FindEventsByName(_ context.Context, term string) ([]models.Event, error) {
	f.searchTerm = term
	return f.events, nil
}

func (f *fakeStore) FindAttendeesByName(_ context.Context, term string) ([]models.Attendee, error) {
	f.searchTerm = term
	return nil, nil
}

func (f *fakeStore) ListActivitiesByEvent(context.Context, uuid.UUID) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeStore) CreateActivity(_ context.Context, fields models.ActivityFields) (*models.Activity, error) {
	f.created = append(f.created, fields)
	a, err := models.NewActivity(fields)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New()
	return a, nil
}

func (f *fakeStore) CountConfirmedAttendees(context.Context, uuid.UUID) (int, error) {
	f.aggregateHit++
	return f.confirmed, nil
}

func (f *fakeStore) SumActivityCost(context.Context, uuid.UUID) (decimal.Decimal, error) {
	f.aggregateHit++
	return f.cost, nil
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTotalsUsesLoadedRelations(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	e := loadedEvent(t, "Party", time.Now(), "300", "")
	e.Attendees = []models.Attendee{{RSVPStatus: models.RSVPConfirmed}, {RSVPStatus: models.RSVPPending}}
	e.Activities = []models.Activity{activity(t, "Band", "20:00", 60, "120")}

	got, err := svc.Totals(context.Background(), &e)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if store.aggregateHit != 0 {
		t.Fatal("expected no store queries for a loaded event")
	}
	if got.ConfirmedAttendees != 1 || !got.TotalActivityCost.Equal(decimal.NewFromInt(120)) || !got.BudgetRemaining.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("totals = %+v", got)
	}
}

func TestTotalsQueriesWhenNotLoaded(t *testing.T) {
	store := &fakeStore{confirmed: 4, cost: decimal.RequireFromString("450.50")}
	svc := newTestService(store)

	e := models.Event{ID: uuid.New(), Budget: decimal.NewFromInt(400)}

	got, err := svc.Totals(context.Background(), &e)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if store.aggregateHit != 2 {
		t.Fatalf("aggregate queries = %d, want 2", store.aggregateHit)
	}
	if got.ConfirmedAttendees != 4 || !got.BudgetRemaining.Equal(decimal.RequireFromString("-50.50")) {
		t.Fatalf("totals = %+v", got)
	}
}

func TestAddActivityReportsConflicts(t *testing.T) {
	eventID := uuid.New()
	store := &fakeStore{activities: []models.Activity{
		activity(t, "Keynote", "09:00", 60, "0"),
		activity(t, "Lunch", "12:00", 60, "0"),
	}}
	svc := newTestService(store)

	created, conflicts, err := svc.AddActivity(context.Background(), models.ActivityFields{
		Name:      "Breakout",
		StartTime: mustClock(t, "09:30"),
		Duration:  30,
		EventID:   eventID,
	})
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}
	if created == nil || len(store.created) != 1 {
		t.Fatal("expected the activity to be created despite the overlap")
	}
	if len(conflicts) != 1 || conflicts[0].Name != "Keynote" {
		t.Fatalf("conflicts = %+v", conflicts)
	}
}

func TestAddActivityValidatesBeforeWriting(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, _, err := svc.AddActivity(context.Background(), models.ActivityFields{
		Name:      "Broken",
		StartTime: mustClock(t, "09:00"),
		Duration:  0,
		EventID:   uuid.New(),
	})
	v, ok := models.AsValidation(err)
	if !ok || v.Field != "duration" {
		t.Fatalf("expected duration validation error, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("nothing should be written for invalid input")
	}
}

func TestSearch(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	if _, err := svc.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected empty term to be rejected")
	} else if v, ok := models.AsValidation(err); !ok || v.Field != "term" {
		t.Fatalf("unexpected error %v", err)
	}

	if _, err := svc.Search(context.Background(), "  gala "); err != nil {
		t.Fatalf("search: %v", err)
	}
	if store.searchTerm != "gala" {
		t.Fatalf("store saw term %q, want trimmed", store.searchTerm)
	}

	if _, err := svc.SearchAttendees(context.Background(), ""); err == nil {
		t.Fatal("expected empty attendee term to be rejected")
	}
	if _, err := svc.SearchAttendees(context.Background(), " ann "); err != nil {
		t.Fatalf("search attendees: %v", err)
	}
	if store.searchTerm != "ann" {
		t.Fatalf("store saw term %q, want trimmed", store.searchTerm)
	}
}

func TestReportNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.Report(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDashboardUsesClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{events: []models.Event{
		loadedEvent(t, "Soon", now.Add(48*time.Hour), "10", ""),
	}}
	svc := newTestService(store)
	svc.now = func() time.Time { return now }

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Upcoming) != 1 || d.Upcoming[0].DaysAway != 2 {
		t.Fatalf("upcoming = %+v", d.Upcoming)
	}
}
