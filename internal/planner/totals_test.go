package planner

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/farellandr/planner/config"
	"github.com/farellandr/planner/internal/models"
	"github.com/farellandr/planner/internal/store"
	"github.com/shopspring/decimal"
)

type totalsCase struct {
	name   string
	budget string
	rsvps  []models.RSVPStatus
	costs  []string
}

var totalsCases = []totalsCase{
	{"empty", "0", nil, nil},
	{"all confirmed", "100", []models.RSVPStatus{models.RSVPConfirmed, models.RSVPConfirmed}, []string{"10"}},
	{"mixed", "1000.00", []models.RSVPStatus{models.RSVPConfirmed, models.RSVPPending, models.RSVPDeclined}, []string{"400.00", "700.00"}},
	{"none confirmed", "5", []models.RSVPStatus{models.RSVPDeclined, models.RSVPPending}, []string{"0"}},
	{"cents", "1.00", []models.RSVPStatus{models.RSVPConfirmed}, []string{"0.10", "0.20", "0.33", "19.99"}},
}

func TestEventTotalsProperties(t *testing.T) {
	for _, tc := range totalsCases {
		t.Run(tc.name, func(t *testing.T) {
			e := loadedEvent(t, tc.name, time.Now(), tc.budget, "")
			for _, r := range tc.rsvps {
				e.Attendees = append(e.Attendees, models.Attendee{Name: "guest", RSVPStatus: r})
			}
			for _, c := range tc.costs {
				e.Activities = append(e.Activities, activity(t, "item", "09:00", 30, c))
			}

			first, second := e.TotalActivityCost(), e.TotalActivityCost()
			if !first.Equal(second) {
				t.Fatalf("total cost changed between calls: %s then %s", first, second)
			}
			if n := e.ConfirmedAttendeeCount(); n > len(e.Attendees) {
				t.Fatalf("confirmed %d exceeds %d attendees", n, len(e.Attendees))
			}
			if !e.BudgetRemaining().Equal(e.Budget.Sub(first)) {
				t.Fatalf("remaining %s != budget %s - total %s", e.BudgetRemaining(), e.Budget, first)
			}
		})
	}
}

func TestTotalsFallbackMatchesLoaded(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "totals.db"),
		LogLevel: "error",
	}, log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	svc := NewService(st, log)

	for _, tc := range totalsCases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := st.CreateEvent(ctx, models.EventFields{
				Name:     tc.name,
				Date:     time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
				Location: "Hall",
				Budget:   decimal.RequireFromString(tc.budget),
			})
			if err != nil {
				t.Fatalf("create event: %v", err)
			}
			for i, r := range tc.rsvps {
				_, err := st.CreateAttendee(ctx, models.AttendeeFields{
					Name:       "guest",
					Email:      "guest" + string(rune('a'+i)) + "@example.com",
					RSVPStatus: r,
					EventID:    created.ID,
				})
				if err != nil {
					t.Fatalf("create attendee: %v", err)
				}
			}
			for _, c := range tc.costs {
				_, err := st.CreateActivity(ctx, models.ActivityFields{
					Name:      "item",
					StartTime: mustClock(t, "09:00"),
					Duration:  30,
					Cost:      decimal.RequireFromString(c),
					EventID:   created.ID,
				})
				if err != nil {
					t.Fatalf("create activity: %v", err)
				}
			}

			loaded, err := st.GetEvent(ctx, created.ID)
			if err != nil {
				t.Fatalf("get event: %v", err)
			}
			inMemory, err := svc.Totals(ctx, loaded)
			if err != nil {
				t.Fatalf("loaded totals: %v", err)
			}

			bare := &models.Event{ID: created.ID, Budget: loaded.Budget}
			queried, err := svc.Totals(ctx, bare)
			if err != nil {
				t.Fatalf("queried totals: %v", err)
			}

			if inMemory.ConfirmedAttendees != queried.ConfirmedAttendees {
				t.Fatalf("confirmed: loaded %d, queried %d", inMemory.ConfirmedAttendees, queried.ConfirmedAttendees)
			}
			if !inMemory.TotalActivityCost.Equal(queried.TotalActivityCost) {
				t.Fatalf("total cost: loaded %s, queried %s", inMemory.TotalActivityCost, queried.TotalActivityCost)
			}
			if !inMemory.BudgetRemaining.Equal(queried.BudgetRemaining) {
				t.Fatalf("remaining: loaded %s, queried %s", inMemory.BudgetRemaining, queried.BudgetRemaining)
			}

			want := decimal.Zero
			for _, c := range tc.costs {
				want = want.Add(decimal.RequireFromString(c))
			}
			if !queried.TotalActivityCost.Equal(want) {
				t.Fatalf("total cost = %s, want %s", queried.TotalActivityCost, want)
			}
		})
	}
}
