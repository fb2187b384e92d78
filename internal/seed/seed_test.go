package seed

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farellandr/planner/config"
	"github.com/farellandr/planner/internal/models"
	"github.com/farellandr/planner/internal/store"
	"github.com/google/uuid"
)

type recordingStore struct {
	events     []*models.Event
	attendees  []*models.Attendee
	activities []*models.Activity
}

func (r *recordingStore) CreateEvent(_ context.Context, f models.EventFields) (*models.Event, error) {
	e, err := models.NewEvent(f)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.New()
	r.events = append(r.events, e)
	return e, nil
}

func (r *recordingStore) CreateAttendee(_ context.Context, f models.AttendeeFields) (*models.Attendee, error) {
	a, err := models.NewAttendee(f)
	if err != nil {
		return nil, err
	}
	r.attendees = append(r.attendees, a)
	return a, nil
}

func (r *recordingStore) CreateActivity(_ context.Context, f models.ActivityFields) (*models.Activity, error) {
	a, err := models.NewActivity(f)
	if err != nil {
		return nil, err
	}
	r.activities = append(r.activities, a)
	return a, nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "seed.db"),
		LogLevel: "error",
	}
	st, err := store.Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestWriteSample(t *testing.T) {
	f, err := Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	st := &recordingStore{}
	res, err := write(context.Background(), st, f)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if res != (Result{Events: 3, Attendees: 5, Activities: 6}) {
		t.Fatalf("result = %+v", res)
	}

	conf := st.events[0]
	if conf.Name != "Tech Conference 2024" || conf.Status != models.StatusPlanning {
		t.Fatalf("first event = %s/%s", conf.Name, conf.Status)
	}
	if st.events[1].Status != models.StatusActive {
		t.Fatalf("wedding status = %s", st.events[1].Status)
	}
	workshop := st.activities[1]
	if workshop.MaxParticipants == nil || *workshop.MaxParticipants != 30 {
		t.Fatalf("workshop limit = %v", workshop.MaxParticipants)
	}
	for _, a := range st.attendees[:3] {
		if a.EventID != conf.ID {
			t.Fatalf("attendee %s attached to %s, want %s", a.Name, a.EventID, conf.ID)
		}
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("events:\n  - name: Party\n    guests: 3\n"))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadEmpty(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Events) != 0 {
		t.Fatalf("events = %d", len(f.Events))
	}
}

const fixtureWithBadAttendee = `
events:
  - name: Picnic
    date: "2024-08-01 12:00"
    location: Park
    budget: "50"
    activities:
      - name: Games
        start_time: "13:00"
        duration: 60
        max_participants: 12
    attendees:
      - name: Ann
        email: ann@example.com
      - name: Bad
        email: not-an-email
`

func TestWriteStopsOnInvalidRow(t *testing.T) {
	f, err := Load(strings.NewReader(fixtureWithBadAttendee))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st := &recordingStore{}
	res, err := write(context.Background(), st, f)
	if _, ok := models.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if res.Events != 1 || res.Attendees != 1 || res.Activities != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestApplyRollsBackOnInvalidRow(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	f, err := Load(strings.NewReader(fixtureWithBadAttendee))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	res, err := Apply(ctx, st, f)
	if v, ok := models.AsValidation(err); !ok || v.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
	if res != (Result{}) {
		t.Fatalf("result = %+v, want zero", res)
	}

	events, err := st.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	attendees, err := st.ListAttendees(ctx)
	if err != nil {
		t.Fatalf("list attendees: %v", err)
	}
	if len(events) != 0 || len(attendees) != 0 {
		t.Fatalf("left %d events and %d attendees behind", len(events), len(attendees))
	}
}

func TestApplySample(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	f, err := Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	res, err := Apply(ctx, st, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res != (Result{Events: 3, Attendees: 5, Activities: 6}) {
		t.Fatalf("result = %+v", res)
	}
	events, err := st.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("stored %d events, want 3", len(events))
	}
}

func TestWriteBadDate(t *testing.T) {
	f := &Fixture{Events: []EventFixture{{Name: "x", Date: "tomorrow", Location: "y"}}}
	if _, err := write(context.Background(), &recordingStore{}, f); err == nil {
		t.Fatal("expected bad date to be rejected")
	}
}
