package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/farellandr/planner/config"
	"github.com/farellandr/planner/internal/app"
	"github.com/farellandr/planner/internal/calendar"
	"github.com/farellandr/planner/internal/helpers"
	"github.com/farellandr/planner/internal/models"
	"github.com/farellandr/planner/internal/planner"
	"github.com/farellandr/planner/internal/seed"
	"github.com/joho/godotenv"
)

const usage = `usage: planner <command> [args]

commands:
  init                      create the database tables
  seed [file.yaml]          load sample data (built-in fixture when no file)
  clear                     delete all events, attendees and activities
  stats                     show database totals
  dashboard                 show the planning dashboard
  search <term>             find events by name
  attendees <term>          find attendees by name
  report <event-id>         detailed report for one event
  export <event-id> <file>  write the event schedule as iCalendar`

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(helpers.ExitUsage)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = app.Run(cfg, nil, func(a *app.App) error {
		return dispatch(context.Background(), a, os.Stdout, flag.Arg(0), flag.Args()[1:])
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, helpers.Describe(err))
		os.Exit(helpers.ExitCode(err))
	}
}

var errUsage = errors.New("wrong arguments, run planner -h for help")

func dispatch(ctx context.Context, a *app.App, out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "init":
		fmt.Fprintln(out, "Database tables created successfully.")
		return nil
	case "seed":
		return runSeed(ctx, a, out, args)
	case "clear":
		if err := a.Store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All data cleared from database.")
		return nil
	case "stats":
		stats, err := a.Planner.Stats(ctx)
		if err != nil {
			return err
		}
		printStats(out, stats)
		return nil
	case "dashboard":
		d, err := a.Planner.Dashboard(ctx)
		if err != nil {
			return err
		}
		printDashboard(out, d)
		return nil
	case "search":
		if len(args) != 1 {
			return errUsage
		}
		events, err := a.Planner.Search(ctx, args[0])
		if err != nil {
			return err
		}
		printEvents(out, events)
		return nil
	case "attendees":
		if len(args) != 1 {
			return errUsage
		}
		attendees, err := a.Planner.SearchAttendees(ctx, args[0])
		if err != nil {
			return err
		}
		printAttendees(out, attendees)
		return nil
	case "report":
		if len(args) != 1 {
			return errUsage
		}
		id, err := helpers.ParseID(args[0])
		if err != nil {
			return err
		}
		report, err := a.Planner.Report(ctx, id)
		if err != nil {
			return err
		}
		printReport(out, report)
		return nil
	case "export":
		if len(args) != 2 {
			return errUsage
		}
		id, err := helpers.ParseID(args[0])
		if err != nil {
			return err
		}
		event, err := a.Store.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		if err := calendar.WriteFile(args[1], event, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %q to %s.\n", event.Name, args[1])
		return nil
	default:
		return errUsage
	}
}

func runSeed(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	var (
		fixture *seed.Fixture
		err     error
	)
	switch len(args) {
	case 0:
		fixture, err = seed.Sample()
	case 1:
		f, openErr := os.Open(args[0])
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		fixture, err = seed.Load(f)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	res, err := seed.Apply(ctx, a.Store, fixture)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sample data created: %d events, %d attendees, %d activities.\n",
		res.Events, res.Attendees, res.Activities)
	return nil
}

func printStats(out io.Writer, s planner.Stats) {
	fmt.Fprintf(out, "Events: %d\nAttendees: %d\nActivities: %d\n", s.Events, s.Attendees, s.Activities)
	if s.Events > 0 {
		fmt.Fprintf(out, "Total Budget: %s\nTotal Activity Costs: %s\n",
			helpers.FormatMoney(s.TotalBudget), helpers.FormatMoney(s.TotalActivityCost))
	}
}

func printEvents(out io.Writer, events []models.Event) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events found.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tLOCATION\tSTATUS\tCONFIRMED")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Name, e.Date.Format(helpers.DateTimeLayout),
			e.Location, e.Status, e.ConfirmedAttendeeCount())
	}
	tw.Flush()
}

func printAttendees(out io.Writer, attendees []models.Attendee) {
	if len(attendees) == 0 {
		fmt.Fprintln(out, "No attendees found.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tRSVP\tEVENT")
	for _, a := range attendees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Email, a.RSVPStatus, a.EventID)
	}
	tw.Flush()
}

func printDashboard(out io.Writer, d planner.Dashboard) {
	if d.TotalEvents == 0 {
		fmt.Fprintln(out, "No events to display in dashboard.")
		return
	}
	fmt.Fprintf(out, "Total Events: %d\nTotal Attendees: %d\nTotal Activities: %d\nTotal Budget: %s\n",
		d.TotalEvents, d.TotalAttendees, d.TotalActivities, helpers.FormatMoney(d.TotalBudget))

	fmt.Fprintln(out, "\nEvents by Status:")
	for _, sc := range d.ByStatus {
		fmt.Fprintf(out, "  %s: %d\n", sc.Status, sc.Count)
	}
	if len(d.Upcoming) > 0 {
		fmt.Fprintln(out, "\nUpcoming Events:")
		for _, u := range d.Upcoming {
			fmt.Fprintf(out, "  %s - %s (%d days away) - %d confirmed\n",
				u.Event.Name, u.Event.Date.Format("2006-01-02"), u.DaysAway, u.Confirmed)
		}
	}
	if len(d.OverBudget) > 0 {
		fmt.Fprintln(out, "\nEvents Over Budget:")
		for _, o := range d.OverBudget {
			fmt.Fprintf(out, "  %s: over by %s\n", o.Event.Name, helpers.FormatMoney(o.Amount))
		}
	}
}

func printReport(out io.Writer, r *planner.EventReport) {
	e := r.Event
	fmt.Fprintf(out, "Detailed Report: %s\n\n", e.Name)
	fmt.Fprintf(out, "Date: %s\nLocation: %s\nStatus: %s\n",
		e.Date.Format("Monday, January 02, 2006 at 15:04"), e.Location, e.Status)
	if e.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", e.Description)
	}

	fmt.Fprintf(out, "\nBudget: %s\nActivity Costs: %s\nRemaining: %s\n",
		helpers.FormatMoney(r.Budget), helpers.FormatMoney(r.TotalCost), helpers.FormatMoney(r.Remaining))
	if r.OverBudget() {
		fmt.Fprintf(out, "Over Budget: %s\n", helpers.FormatMoney(r.Remaining.Neg()))
	}

	fmt.Fprintf(out, "\nTotal Invited: %d\nConfirmed: %d\nPending: %d\nDeclined: %d\n",
		r.RSVP.Total, r.RSVP.Confirmed, r.RSVP.Pending, r.RSVP.Declined)
	if len(r.Dietary) > 0 {
		fmt.Fprintln(out, "\nDietary Restrictions (confirmed attendees):")
		for _, d := range r.Dietary {
			fmt.Fprintf(out, "  %s: %d\n", d.Restriction, d.Count)
		}
	}

	if len(r.Schedule) > 0 {
		fmt.Fprintln(out, "\nActivity Schedule:")
		for _, s := range r.Schedule {
			line := fmt.Sprintf("  %s-%s: %s", s.Start, s.End, s.Activity.Name)
			if s.Activity.MaxParticipants != nil {
				line += fmt.Sprintf(" (max %d)", *s.Activity.MaxParticipants)
			}
			if s.Activity.Cost.IsPositive() {
				line += " " + helpers.FormatMoney(s.Activity.Cost)
			}
			fmt.Fprintln(out, line)
		}
	}
	if len(r.Conflicts) > 0 {
		fmt.Fprintln(out, "\nTime Conflicts Detected:")
		for _, c := range r.Conflicts {
			fmt.Fprintf(out, "  %s conflicts with %s\n", c.A.Name, c.B.Name)
		}
	}
}
